package app

import (
	"time"

	"github.com/nomoriel/phase2vec/internal/configstore"
	"github.com/nomoriel/phase2vec/internal/gridsearch"
)

// timestamp renders the run-group timestamp used in generated gs_name values.
func timestamp() string {
	return time.Now().Format("20060102-150405")
}

// defaultTrainParameters is the full default training configuration, the
// base every gridsearch variant overlays.
func defaultTrainParameters() *configstore.Document {
	doc := configstore.NewDocument()
	doc.Set("data_config", "data-config.hcl")
	doc.Set("net_config", "net-config.hcl")
	doc.Set("exp_name", "")
	doc.Set("num_epochs", 10.0)
	doc.Set("batch_size", 64.0)
	doc.Set("beta", 1.0)
	doc.Set("fp_normalize", true)
	doc.Set("device", "cpu")
	doc.Set("optimizer", "Adam")
	doc.Set("learning_rate", 0.0001)
	doc.Set("momentum", 0.0)
	doc.Set("model_save_dir", "models")
	doc.Set("log_dir", "logs")
	doc.Set("log_period", 10.0)
	doc.Set("seed", 0.0)
	return doc
}

// defaultDataParameters mirrors the dataset-generation defaults.
func defaultDataParameters() *configstore.Document {
	doc := configstore.NewDocument()
	doc.Set("data_dir", "data")
	doc.Set("data_set_name", "dataset")
	doc.Set("system_names", []any{"simple_oscillator"})
	doc.Set("num_samples", 1000.0)
	doc.Set("samplers", []any{"uniform"})
	doc.Set("system_props", []any{1.0})
	doc.Set("val_size", 0.25)
	doc.Set("num_lattice", 64.0)
	doc.Set("min_dims", []any{-1.0, -1.0})
	doc.Set("max_dims", []any{1.0, 1.0})
	return doc
}

// defaultNetParameters mirrors the network-architecture defaults.
func defaultNetParameters() *configstore.Document {
	doc := configstore.NewDocument()
	doc.Set("net_class", "CNNwFC_exp_emb")
	doc.Set("latent_dim", 100.0)
	doc.Set("in_shape", []any{2.0, 64.0, 64.0})
	doc.Set("num_conv_layers", 3.0)
	doc.Set("kernel_sizes", []any{3.0, 3.0, 3.0})
	doc.Set("kernel_features", []any{128.0, 128.0, 128.0})
	doc.Set("strides", []any{2.0, 2.0, 2.0})
	doc.Set("pooling_sizes", []any{})
	doc.Set("num_fc_hid_layers", 2.0)
	doc.Set("fc_hid_dims", []any{128.0, 128.0})
	doc.Set("poly_order", 3.0)
	doc.Set("batch_norm", true)
	doc.Set("dropout", true)
	doc.Set("dropout_rate", 0.1)
	doc.Set("activation_type", "relu")
	return doc
}

// defaultScans is the editable starting point written into generated
// gridsearch configs.
func defaultScans() []gridsearch.ScanGroup {
	return []gridsearch.ScanGroup{
		{
			Label: "learning_rate",
			Params: []gridsearch.ScanParam{
				{Name: "learning_rate", Values: []any{0.0001, 0.001, 0.01}},
			},
		},
		{
			Label: "beta",
			Params: []gridsearch.ScanParam{
				{Name: "beta", Values: []any{0.5, 1.0, 2.0}},
			},
		},
	}
}
