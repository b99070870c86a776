package workflow

import (
	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
	"github.com/YuminosukeSato/svmlab/svm"
)

// Build constructs the untrained estimator a configuration describes.
// Construction is pure: the same configuration always yields a
// structurally identical estimator.
func Build(cfg Config) (model.Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kernel, err := svm.ParseKernel(cfg.Kernel)
	if err != nil {
		return nil, err
	}
	if cfg.RFE && kernel != svm.KernelLinear {
		return nil, errors.NewInvalidConfigurationError("kernel", "feature elimination needs linear feature weights", cfg.Kernel)
	}

	switch cfg.Task {
	case Classification:
		weight, err := svm.ParseClassWeight(cfg.ClassWeight)
		if err != nil {
			return nil, err
		}
		return svm.NewSVC(
			svm.WithC(cfg.C),
			svm.WithKernel(kernel),
			svm.WithClassWeight(weight),
		), nil
	case Regression:
		return svm.NewSVR(
			svm.WithSVRC(cfg.C),
			svm.WithSVRKernel(kernel),
		), nil
	}
	return nil, errors.NewInvalidConfigurationError("task", "unknown task kind", int(cfg.Task))
}
