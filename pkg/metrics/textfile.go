package metrics

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes everything g gathers to path, atomically replacing
// any previous file, so a node exporter textfile collector can pick it up.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	slog.Info("metrics textfile written", "path", path)
	return nil
}
