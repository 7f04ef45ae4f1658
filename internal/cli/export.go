package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hobbyparts/hpt/internal/api"
	"github.com/hobbyparts/hpt/internal/atomicfile"
	"github.com/hobbyparts/hpt/internal/inventory"
	"github.com/hobbyparts/hpt/internal/model"
	"github.com/hobbyparts/hpt/internal/slugs"
	"github.com/hobbyparts/hpt/internal/ui"
)

var exportForce bool

// exportDocument is the file written by 'hpt export'.
type exportDocument struct {
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Server     string            `json:"server,omitempty" yaml:"server,omitempty"`
	APIURL     string            `json:"api_url" yaml:"api_url"`
	Summary    model.Summary     `json:"summary" yaml:"summary"`
	Issues     []inventory.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

type exportFormat string

const (
	exportYAML exportFormat = "yaml"
	exportJSON exportFormat = "json"
)

func exportFormatFor(path string) (exportFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return exportYAML, nil
	case ".json":
		return exportJSON, nil
	default:
		return "", fmt.Errorf("cannot tell the export format from %q", path)
	}
}

func encodeExport(doc exportDocument, format exportFormat) ([]byte, error) {
	if format == exportJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the inventory summary to a YAML or JSON file",
	Long: `Write the inventory summary to a YAML or JSON file.

The format follows the file extension (.yaml, .yml or .json). Without a
file name, writes inventory-<server>.yaml in the current directory. The file
is replaced atomically. An existing file is overwritten with --force, or
after confirming at the terminal.

Examples:
  hpt export
  hpt export garage.json
  hpt export backup/inventory.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ep := getEndpoint()

		path := slugs.FileName("inventory", ep.Server, string(exportYAML))
		if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
			path = strings.TrimSpace(args[0])
		}
		format, err := exportFormatFor(path)
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use a .yaml, .yml or .json file name")
		}
		overwrite := exportForce
		if _, err := os.Stat(path); err == nil && !overwrite {
			if !promptForConfirm(fmt.Sprintf("Overwrite %s?", path)) {
				return handleErrorMsg(ErrConfirmRequired, fmt.Sprintf("%s already exists", path), "Use --force to overwrite it")
			}
			overwrite = true
		}

		snap, elapsed, err := fetchSnapshot(cmd, api.SnapshotOptions{Projects: true})
		if err != nil {
			return handleBackendError(err)
		}

		summary := inventory.Build(collectionsOf(snap))
		if !includeImages {
			stripSummaryImages(&summary)
		}
		doc := exportDocument{
			ExportedAt: time.Now().UTC().Truncate(time.Second),
			Server:     ep.Server,
			APIURL:     ep.APIURL,
			Summary:    summary,
			Issues:     inventory.CheckLinks(snap.Items, snap.Links, snap.Containers, snap.Locations),
		}

		data, err := encodeExport(doc, format)
		if err != nil {
			return handleError(ErrInternal, fmt.Errorf("encode export: %w", err), "")
		}
		err = atomicfile.WriteFileWith(path, data, atomicfile.Options{Perm: 0o644, MkdirAll: true, NoClobber: !overwrite})
		if errors.Is(err, atomicfile.ErrExists) {
			return handleErrorMsg(ErrConfirmRequired, fmt.Sprintf("%s already exists", path), "Use --force to overwrite it")
		}
		if err != nil {
			return handleError(ErrFileWriteError, fmt.Errorf("write %s: %w", path, err), "")
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"path":   path,
				"format": format,
				"bytes":  len(data),
				"items":  summary.ItemStats.Total,
				"issues": len(doc.Issues),
			}, withPending(nil), responseMeta(summary.ItemStats.Total, elapsed))
			return nil
		}

		fmt.Println(ui.Successf("Exported %s to %s", ui.Plural(summary.ItemStats.Total, "item", "items"), linkFile(path)))
		if n := len(doc.Issues); n > 0 {
			fmt.Println(ui.Hint(fmt.Sprintf("  includes %d placement issue(s); see 'hpt check'", n)))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Overwrite an existing file")
	exportCmd.Flags().BoolVar(&includeImages, "images", false, "Include base64 image data (JSON exports only)")
	rootCmd.AddCommand(exportCmd)
}
