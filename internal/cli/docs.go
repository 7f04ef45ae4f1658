package cli

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/hobbyparts/hpt/docs"
	"github.com/hobbyparts/hpt/internal/slugs"
	"github.com/hobbyparts/hpt/internal/ui"
)

const (
	docsRoot      = "guide"
	docsIndexPath = "index.yaml"
)

var (
	docsDisplayContext = ui.NewDisplayContext
	docsMarkdownRender = ui.RenderMarkdown
)

type docsTopic struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Path  string `json:"path" yaml:"path"`
}

type docsIndex struct {
	Topics []docsTopic `yaml:"topics"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the guides bundled with hpt",
	Long: `Read the guides bundled with hpt.

Without a topic, lists the available guides. For command usage, use
'hpt help <command>'.

Examples:
  hpt docs
  hpt docs servers
  hpt docs "json output"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := loadDocsTopics(builtindocs.FS)
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild hpt so bundled docs are available")
		}

		if len(args) == 0 {
			return outputDocsTopics(topics)
		}

		topic, ok := findDocsTopic(topics, args[0])
		if !ok {
			ids := make([]string, 0, len(topics))
			for _, t := range topics {
				ids = append(ids, t.ID)
			}
			return handleErrorMsg(ErrFileNotFound,
				fmt.Sprintf("no guide named %q", args[0]),
				"Available guides: "+strings.Join(ids, ", "))
		}
		return outputDocsTopic(topic)
	},
}

func loadDocsTopics(docsFS fs.FS) ([]docsTopic, error) {
	raw, err := fs.ReadFile(docsFS, path.Join(docsRoot, docsIndexPath))
	if err != nil {
		return nil, fmt.Errorf("read docs index: %w", err)
	}

	var index docsIndex
	if err := yaml.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("parse docs index: %w", err)
	}

	topics := make([]docsTopic, 0, len(index.Topics))
	for _, t := range index.Topics {
		id := strings.TrimSpace(t.ID)
		if id == "" || strings.TrimSpace(t.Path) == "" {
			return nil, fmt.Errorf("parse docs index: topic %q needs an id and a path", t.Title)
		}
		if t.Title == "" {
			t.Title = id
		}
		t.ID = id
		t.Path = path.Join(docsRoot, path.Clean("/" + t.Path)[1:])
		topics = append(topics, t)
	}
	return topics, nil
}

// findDocsTopic matches a guide by id or title, ignoring case and punctuation.
func findDocsTopic(topics []docsTopic, raw string) (docsTopic, bool) {
	for _, t := range topics {
		if slugs.Equal(t.ID, raw) || slugs.Equal(t.Title, raw) {
			return t, true
		}
	}
	return docsTopic{}, false
}

func outputDocsTopics(topics []docsTopic) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
		return nil
	}

	fmt.Println(ui.Header("Guides"))
	for _, t := range topics {
		fmt.Printf("  %-34s %s\n", "hpt docs "+t.ID, t.Title)
	}
	return nil
}

func outputDocsTopic(topic docsTopic) error {
	content, err := fs.ReadFile(builtindocs.FS, topic.Path)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"topic":   topic.ID,
			"title":   topic.Title,
			"content": string(content),
		}, nil)
		return nil
	}

	rendered := string(content)
	display := docsDisplayContext()
	if display.IsTTY {
		if out, err := docsMarkdownRender(rendered, display.MarkdownWidth()); err == nil {
			rendered = out
		}
	}
	fmt.Print(rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Println()
	}
	return nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
