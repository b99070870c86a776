// Package svmlab implements the model-selection and evaluation workflow
// behind an interactive dashboard for support-vector classification and
// regression on tabular data.
//
// The library takes already-validated train/test feature matrices,
// builds an SVC or SVR from an immutable hyperparameter configuration,
// trains it either by k-fold cross-validation with best-fold selection
// or by recursive feature elimination, computes a fixed metric set on
// the held-out split, and packages everything into one flat log record
// per run for downstream persistence and rendering.
//
// # Quick start
//
//	split := &dataset.Split{
//	    XTrain: XTrain, YTrain: YTrain,
//	    XTest: XTest, YTest: YTest,
//	    FeatureNames: []string{"age", "grade", "stage"},
//	    LabelName:    "outcome",
//	}
//
//	cfg := workflow.DefaultClassifierConfig()
//	runner := workflow.NewRunner(nil)
//	result, err := runner.Run(cfg, split)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Log["val_roc_auc"])
//
// # Packages
//
//   - svm: support-vector estimators (SVC, SVR) with linear and RBF kernels
//   - modelselection: k-fold splitting, multi-metric cross-validation,
//     recursive feature elimination (RFE, RFECV), named scorers
//   - workflow: configuration, training strategy, evaluation, log assembly
//   - metrics: accuracy, weighted F1, ROC-AUC, RMSE, R², concordance index
//   - dataset: train/test split container and consistency checks
//   - plots: confusion matrix, feature importance and RFECV curve figures
//   - runlog: append-only JSONL store for per-run log records
//   - core/model, core/parallel, pkg/errors, pkg/log: shared infrastructure
package svmlab
