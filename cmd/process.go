package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/intel-engine/internal/intel"
	"github.com/sells-group/intel-engine/internal/model"
)

var processFile string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a single customer data record",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := loadCustomerData(processFile)
		if err != nil {
			return err
		}

		processor, err := intel.New(cfg.Anthropic)
		if err != nil {
			return err
		}

		report, err := processor.ProcessCustomerData(ctx, data)
		if err != nil {
			return eris.Wrap(err, "process customer data")
		}

		zap.L().Info("processing complete",
			zap.String("company", report.CompanyName),
			zap.Int("insights", len(report.Insights)),
			zap.Int("opportunities", len(report.Opportunities)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	processCmd.Flags().StringVar(&processFile, "file", "", "customer data file, JSON or YAML (required)")
	_ = processCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(processCmd)
}

// loadCustomerData reads one CustomerData record from a JSON or YAML file.
func loadCustomerData(path string) (model.CustomerData, error) {
	var data model.CustomerData

	raw, err := os.ReadFile(path)
	if err != nil {
		return data, eris.Wrap(err, "read customer data file")
	}

	if isYAMLPath(path) {
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return data, eris.Wrap(err, "parse customer data yaml")
		}
	} else {
		if err := json.Unmarshal(raw, &data); err != nil {
			return data, eris.Wrap(err, "parse customer data json")
		}
	}

	if strings.TrimSpace(data.CompanyName) == "" {
		return data, eris.New("customer data: company_name is required")
	}

	return data, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
