package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scout/pkg/config"
	"scout/pkg/draft"
	"scout/pkg/logger"
	"scout/pkg/state"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current search settings as JSON",
	Run:   runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) {
	loader := config.NewLoader()
	cfg, err := loader.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{Level: logger.LevelError, Development: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	statePath := cfg.State.FilePath
	if statePath == "" {
		statePath = config.DefaultStatePath()
	}
	backend := state.BackendType(cfg.State.Backend)
	if backend == "" {
		backend = state.BackendFile
	}
	kv, err := state.NewKV(log, &state.Config{
		Backend:       backend,
		FilePath:      statePath,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisPrefix:   cfg.State.Prefix,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening state store: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	drafts := draft.New(kv, cfg.Search)
	snap, ok, err := drafts.Get(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		snap = drafts.DefaultSnapshot()
	}

	data, err := json.MarshalIndent(snap.Search, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding settings: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
