package commands

import (
	"fmt"
	"log/slog"

	"github.com/streamfold/docgen/internal/logfields"
)

// CheckCmd validates the docs tree without touching any file: presence
// checks, link resolution and verification, front-matter validation. With
// --strict it additionally fails when any document is out of date.
type CheckCmd struct {
	Strict bool `help:"Fail if any document would be rewritten by process"`
}

func (c *CheckCmd) Run(_ *Global, cli *CLI) error {
	rt, err := newRuntime(cli, nil)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.checkPresence(); err != nil {
		return err
	}

	changed, err := rt.processAll(false)
	if err != nil {
		return err
	}
	if changed > 0 {
		slog.Warn("Documents out of date", logfields.OutOfDate(changed))
		if c.Strict {
			return fmt.Errorf("%d document(s) need processing, run `docgen process`", changed)
		}
	}
	slog.Info("Check complete", logfields.Documents(len(rt.docFiles)), logfields.OutOfDate(changed))
	return nil
}
