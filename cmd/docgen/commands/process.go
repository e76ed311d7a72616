package commands

import (
	"log/slog"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/streamfold/docgen/internal/logfields"
	"github.com/streamfold/docgen/internal/metrics"
)

// ProcessCmd runs the full pipeline over the docs tree and writes back every
// document whose processed text differs from what is on disk.
type ProcessCmd struct {
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address while the run lasts (e.g. :9090)"`
}

func (p *ProcessCmd) Run(_ *Global, cli *CLI) error {
	recorder := metrics.Recorder(metrics.NoopRecorder{})
	if p.MetricsAddr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		go func() {
			slog.Info("Serving metrics", "addr", p.MetricsAddr)
			if err := http.ListenAndServe(p.MetricsAddr, metrics.Handler(reg)); err != nil {
				slog.Warn("Metrics server stopped", "error", err)
			}
		}()
	}

	rt, err := newRuntime(cli, recorder)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.checkPresence(); err != nil {
		return err
	}

	changed, err := rt.processAll(true)
	if err != nil {
		return err
	}
	slog.Info("Run complete", logfields.Documents(len(rt.docFiles)), logfields.Rewritten(changed))
	return nil
}
