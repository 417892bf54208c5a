package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/asterion-dev/asterion/internal/retrieve"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Add documents to the local retrieval corpus",
	Long: `Ingest validates a YAML document file and merges it into the local
corpus at ~/.asterion/corpus.yaml. Later chart questions retrieve from
the built-in corpus plus everything ingested here.

Each entry needs an id and content, with optional metadata:

  - id: my-source-1
    content: "The lord of the year disposes the profected house..."
    metadata:
      topic: profection
      school: hellenistic`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	incoming, err := retrieve.LoadCorpusFile(args[0])
	if err != nil {
		return err
	}

	path := corpusPath()
	if path == "" {
		return fmt.Errorf("cannot resolve home directory for corpus storage")
	}

	existing, err := retrieve.LoadCorpusFile(path)
	if err != nil {
		// First ingestion: start from an empty corpus.
		existing = nil
	}

	merged := map[string]retrieve.Document{}
	for _, d := range existing {
		merged[d.ID] = d
	}
	replaced := 0
	for _, d := range incoming {
		if _, ok := merged[d.ID]; ok {
			replaced++
		}
		merged[d.ID] = d
	}

	out := make([]retrieve.Document, 0, len(merged))
	for _, d := range merged {
		out = append(out, d)
	}

	raw, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal corpus: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create corpus directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}

	fmt.Printf("✓ Ingested %d documents (%d replaced), corpus now holds %d\n",
		len(incoming), replaced, len(out))
	return nil
}
