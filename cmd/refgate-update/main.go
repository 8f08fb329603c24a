// Command refgate-update is the repository update hook. Git invokes it once
// per ref with <refname> <old-id> <new-id>; exit 0 lets the update through,
// exit 1 rejects it with a single explanatory line on stderr.
//
// Stderr is relayed to the pusher's terminal, so everything except the final
// verdict line goes to the log file instead.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"refgate/internal/modkit"
	"refgate/internal/modkit/module"
	"refgate/internal/platform/config"
	"refgate/internal/platform/logger"
	"refgate/internal/platform/store"
	"refgate/internal/services/gate/domain"

	gatemod "refgate/internal/services/gate/module"
)

const defaultLogFile = "refgate.log"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opt := logger.FromEnv()
	if opt.FilePath == "" {
		// the hook runs with CWD = the bare repository
		opt.FilePath = defaultLogFile
	}
	opt.Component = "refgate-update"
	logger.Init(opt)
	l := logger.Get()

	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "refgate: usage: refgate-update <refname> <old-id> <new-id>")
		l.Error().Int("argc", len(args)).Msg("invoked with wrong argument count")
		return 1
	}
	upd := domain.RefUpdate{RefName: args[0], OldID: args[1], NewID: args[2]}

	cid := uuid.NewString()
	ctx := logger.WithCorrelation(context.Background(), cid)

	root := config.New()
	gateCfg := root.Prefix("REFGATE_")

	deps := modkit.Deps{Cfg: root, Log: *l}

	if url := gateCfg.MayString("AUDIT_DBURL", ""); url != "" {
		st, err := store.Open(ctx, store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         url,
				MaxConns:    int32(gateCfg.MayInt("AUDIT_MAX_CONNS", 2)),
				SlowQueryMs: gateCfg.MayInt("AUDIT_SLOW_MS", 500),
			},
		}, store.WithLogger(*l))
		if err != nil {
			// audit is best effort; an unreachable store degrades, never blocks
			l.Warn().Err(err).Msg("audit store unavailable; continuing without audit")
		} else {
			defer func() {
				if cerr := st.Close(context.Background()); cerr != nil {
					l.Error().Err(cerr).Msg("failed to close audit store")
				}
			}()
			deps.PG = st.PG
		}
	}

	mod := gatemod.New(deps, gatemod.Options{})
	module.Register(mod.Name(), mod.Ports())
	ports := module.MustPortsOf[gatemod.Ports](mod)

	verdict, err := ports.Gate.Evaluate(ctx, upd)
	if err != nil {
		logger.C(ctx).Error().Err(err).
			Str("ref", upd.RefName).Str("old", upd.OldID).Str("new", upd.NewID).
			Msg("evaluation failed")
		fmt.Fprintf(os.Stderr, "refgate: internal error (id=%s)\n", cid)
		return 1
	}
	if !verdict.Allowed {
		fmt.Fprintf(os.Stderr, "refgate: %s: %s\n", upd.RefName, verdict.Reason)
		return 1
	}
	return 0
}
