package cli

import (
	"fmt"
	"log/slog"
	"os"

	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/aiscm/aictl/pkg/data"
	"github.com/aiscm/aictl/pkg/risk"
)

var (
	fileFlag = &urfave.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Path to a YAML file with one or more system descriptors",
	}

	nameFlag = &urfave.StringFlag{
		Name:  "name",
		Usage: "Name of the AI system being assessed",
	}

	modelFlag = &urfave.StringFlag{
		Name: "model",
		Usage: "Model type [LinearRegression, RandomForest, GradientBoosting, " +
			"NeuralNetwork, DeepNeuralNetwork, Unclassified]",
	}

	envFlag = &urfave.StringFlag{
		Name:  "env",
		Usage: "Deployment environment [aws, gcp, azure, on_premise, edge, hybrid]",
	}

	sourceFlag = &urfave.StringSliceFlag{
		Name:  "source",
		Usage: "Training data source tag (repeatable)",
	}

	libFlag = &urfave.StringSliceFlag{
		Name:  "lib",
		Usage: "Third-party library used by the system (repeatable)",
	}

	driftFlag = &urfave.BoolFlag{
		Name:  "drift-monitoring",
		Usage: "Whether drift monitoring is in place (omit if unknown)",
	}

	encryptionFlag = &urfave.BoolFlag{
		Name:  "encryption",
		Usage: "Whether data is encrypted at rest and in transit (omit if unknown)",
	}

	accessFlag = &urfave.BoolFlag{
		Name:  "access-controls",
		Usage: "Whether access controls protect the training data (omit if unknown)",
	}

	noSaveFlag = &urfave.BoolFlag{
		Name:  "no-save",
		Usage: "Do not persist the result to the local history",
	}

	assessCmd = &urfave.Command{
		Name:            "assess",
		HideHelpCommand: true,
		Usage:           "Score one or more AI systems and map their compliance gaps",
		Action:          cmdAssess,
		Flags: []urfave.Flag{
			fileFlag,
			nameFlag,
			modelFlag,
			envFlag,
			sourceFlag,
			libFlag,
			driftFlag,
			encryptionFlag,
			accessFlag,
			noSaveFlag,
		},
	}
)

func cmdAssess(c *urfave.Context) error {
	descriptors, err := descriptorsFromContext(c)
	if err != nil {
		return err
	}

	cfg := getConfig(c)
	results := make([]*risk.Result, 0, len(descriptors))

	for _, d := range descriptors {
		r, err := risk.Assess(c.Context, cfg.Taxonomy, d, cfg.Provider, cfg.providerTimeout())
		if err != nil {
			return fmt.Errorf("assessing %q: %w", d.SystemName, err)
		}

		if !c.Bool(noSaveFlag.Name) {
			id, err := data.SaveAssessment(cfg.DB, r)
			if err != nil {
				return fmt.Errorf("saving assessment for %q: %w", d.SystemName, err)
			}
			slog.Debug("assessment saved", "id", id, "system", d.SystemName)
		}
		results = append(results, r)
	}

	if len(results) == 1 {
		return encode(results[0])
	}
	return encode(results)
}

func descriptorsFromContext(c *urfave.Context) ([]*risk.SystemDescriptor, error) {
	if file := c.String(fileFlag.Name); file != "" {
		return readDescriptorFile(file)
	}

	d := &risk.SystemDescriptor{
		SystemName:          c.String(nameFlag.Name),
		DeploymentEnv:       risk.ParseDeploymentEnv(c.String(envFlag.Name)),
		DataSources:         c.StringSlice(sourceFlag.Name),
		ThirdPartyLibraries: c.StringSlice(libFlag.Name),
	}

	mt, ok := risk.ParseModelType(c.String(modelFlag.Name))
	if !ok {
		return nil, fmt.Errorf("%w: unknown model type %q",
			risk.ErrInvalidDescriptor, c.String(modelFlag.Name))
	}
	d.ModelType = mt

	// flags left unset stay unknown, which the extractor treats as a gap
	if c.IsSet(driftFlag.Name) {
		v := c.Bool(driftFlag.Name)
		d.DriftMonitoring = &v
	}
	if c.IsSet(encryptionFlag.Name) {
		v := c.Bool(encryptionFlag.Name)
		d.DataEncryption = &v
	}
	if c.IsSet(accessFlag.Name) {
		v := c.Bool(accessFlag.Name)
		d.AccessControls = &v
	}

	return []*risk.SystemDescriptor{d}, nil
}

func readDescriptorFile(path string) ([]*risk.SystemDescriptor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor file %s: %w", path, err)
	}

	// try a list first, then a single document
	var list []*risk.SystemDescriptor
	if err := yaml.Unmarshal(b, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	var single risk.SystemDescriptor
	if err := yaml.Unmarshal(b, &single); err != nil {
		return nil, fmt.Errorf("parsing descriptor file %s: %w", path, err)
	}
	return []*risk.SystemDescriptor{&single}, nil
}
