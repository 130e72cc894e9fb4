package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/surface/sim"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	runSessions   int
	runStatusAddr string
	runSeed       uint64
	runAnswers    []string
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play sessions against the simulated game until stopped",
		Args:  cobra.NoArgs,
		RunE:  runRun,
	}
	cmd.Flags().IntVarP(&runSessions, "sessions", "n", 0, "Stop after this many sessions (0 = run until interrupted)")
	cmd.Flags().StringVar(&runStatusAddr, "status-addr", "", "Serve the status API on this address (default: $STATUS_ADDR)")
	cmd.Flags().Uint64Var(&runSeed, "seed", 0, "Random seed (default: $SOLVER_SEED or time based)")
	cmd.Flags().StringSliceVar(&runAnswers, "answer", nil, "Fixed answers to play in order instead of drawing from the answer list")

	RootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := uint64(time.Now().UnixNano())
	switch {
	case cmd.Flags().Changed("seed"):
		seed = runSeed
	case cfg.HasSeed:
		seed = cfg.Seed
	}
	if runStatusAddr != "" {
		cfg.StatusAddr = runStatusAddr
	}

	list, err := openList()
	if err != nil {
		return err
	}
	pick, err := picker(seed)
	if err != nil {
		return err
	}
	surface := sim.New(pick, words.IsAllowed)
	defer surface.Close()

	openers := cfg.Openers
	if openers == nil {
		openers = solver.DefaultOpeners
	}
	policy := solver.NewPolicy(openers, rand.NewPCG(seed, 1))

	views := store.NewMemoryStore(0)
	ctrl := session.NewController(surface, list, policy, session.Config{ForcedLoss: cfg.ForcedLoss}, views)
	sup := &session.Supervisor{
		Controller:  ctrl,
		Surface:     surface,
		Observer:    views,
		MaxSessions: runSessions,
	}

	hist, err := openHistory()
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	var statusHistory httpserver.History
	if hist != nil {
		defer hist.Close()
		sup.Recorder = hist
		statusHistory = hist
	}

	srvDone := make(chan struct{})
	if cfg.StatusAddr != "" {
		srv := httpserver.New(views, statusHistory, httpserver.Auth{
			Secret:       cfg.JWTSecret,
			Expires:      cfg.JWTExpires,
			PasswordHash: cfg.AdminPasswordHash,
		}, stop)
		srvCtx, cancelSrv := context.WithCancel(context.Background())
		defer func() {
			cancelSrv()
			<-srvDone
		}()
		go func() {
			defer close(srvDone)
			log.Info().Str("addr", cfg.StatusAddr).Msg("starting status API")
			if err := srv.Run(srvCtx, cfg.StatusAddr); err != nil {
				log.Error().Err(err).Msg("status API exited")
			}
		}()
	} else {
		close(srvDone)
	}

	log.Info().
		Str("wordlist", list.Path()).
		Strs("openers", policy.Openers()).
		Uint64("seed", seed).
		Msg("starting solver")
	tally, err := sup.Run(ctx)
	if perr := printJSON(cmd.OutOrStdout(), tally); perr != nil && err == nil {
		err = perr
	}
	return err
}

// picker chooses how the simulated game draws its answers.
func picker(seed uint64) (sim.Picker, error) {
	if len(runAnswers) > 0 {
		return sim.Fixed(runAnswers...), nil
	}
	answers, err := words.Answers()
	if err != nil {
		return nil, fmt.Errorf("load embedded answers: %w", err)
	}
	if cfg.Picker == "daily" {
		return sim.Daily(answers, cfg.DailySalt, time.Now()), nil
	}
	return sim.Random(answers, rand.NewPCG(seed, 2)), nil
}
