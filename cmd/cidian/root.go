package main

import (
	"database/sql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/weiyin/cidian/pkg/charinfo"
	"github.com/weiyin/cidian/pkg/config"
	"github.com/weiyin/cidian/pkg/dictionary"
	"github.com/weiyin/cidian/pkg/lookup"
	"github.com/weiyin/cidian/pkg/segment"
	"github.com/weiyin/cidian/pkg/vocab"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *sql.DB
	store    *vocab.Store
	syncer   *vocab.Syncer
	pipeline *lookup.Pipeline
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}

	indexes := dictionary.Shared(cfg.Data.WordsPath, cfg.Data.CharsPath, a.log)

	a.store, a.db, err = vocab.Open(cfg.DB.Path, a.log)
	if err != nil {
		return err
	}
	a.syncer = vocab.NewSyncer(a.store, vocab.NewFileReplica(cfg.Replica.Path), a.log)

	// Merge the replica before serving any lookup so local saves never race
	// a half-applied remote state. Failure here is a warning, not fatal.
	if _, err := a.syncer.PullAll(cmd.Context()); err != nil {
		a.log.Warn("startup replica sync failed, continuing with local state", zap.Error(err))
	}

	a.pipeline = lookup.New(
		segment.New(indexes.Words, cfg.Lookup.CacheSize),
		charinfo.NewResolver(indexes.Chars),
		a.store,
		a.syncer,
		a.log,
	)
	return nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cidian",
		Short:         "Chinese dictionary lookup and personal vocabulary tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.AddCommand(
		newLookupCmd(a),
		newReadCmd(a),
		newVocabCmd(a),
		newSyncCmd(a),
		newComponentsCmd(a),
	)
	return root
}
