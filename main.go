package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pocketbot/pkg/bot"
	"pocketbot/pkg/config"
	"pocketbot/pkg/inference"
	"pocketbot/pkg/quotes"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "pocketbot",
		Short: "Discord bot with notes, quotes and AI answers",
		Long: `pocketbot registers a handful of slash commands on Discord:
/hello /time /motivate /note /readnotes /ask /lastquestion

Examples:
  pocketbot serve
  pocketbot notes 123456789012345678`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "path to the YAML config file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Connect to Discord and handle slash commands",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(configPath)
			},
		},
		&cobra.Command{
			Use:   "notes <user-id>",
			Short: "Print a user's saved notes from the configured store",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return printNotes(cmd, configPath, args[0])
			},
		},
	)

	return rootCmd
}

func serve(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	secrets, err := cfg.LoadSecrets()
	if err != nil {
		log.Fatal(err)
	}

	noteStore, closeNotes, err := openNoteStore(cfg, secrets)
	if err != nil {
		log.Fatalf("Failed to open %s note store: %v", cfg.Notes.Backend, err)
	}
	defer closeNotes()

	questions, closeQuestions, err := openQuestionStore(cfg, secrets)
	if err != nil {
		log.Fatalf("Failed to open %s last-question store: %v", cfg.LastQuestion.Backend, err)
	}
	defer closeQuestions()

	timeout := time.Duration(cfg.Inference.TimeoutSeconds) * time.Second
	var generator inference.Generator
	switch cfg.Inference.Provider {
	case "openai":
		generator = inference.NewChatClient(secrets.HFToken, cfg.Inference.BaseURL, cfg.Inference.Model, timeout)
		log.Printf("Using chat completions at %s (model %s)", cfg.Inference.BaseURL, cfg.Inference.Model)
	default:
		generator = inference.NewClient(secrets.HFToken, cfg.Inference.URL, timeout)
		log.Printf("Using text generation at %s", cfg.Inference.URL)
	}

	handler := bot.NewHandler(noteStore, questions, generator, quotes.NewPicker(nil), cfg.Messages.ChunkSize)

	// Create Discord Session
	dg, err := discordgo.New("Bot " + secrets.DiscordToken)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	// Register Handlers
	dg.AddHandler(handler.Ready)
	dg.AddHandler(handler.InteractionCreate)

	// Open Connection
	if err := dg.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}
	defer dg.Close()

	// An empty guild ID registers globally, which can take a while to propagate
	guildID := cfg.Discord.GuildID
	registeredCommands, err := bot.RegisterSlashCommands(dg, guildID)
	if err != nil {
		log.Fatalf("Error registering slash commands: %v", err)
	}

	if cfg.Discord.UnregisterOnExit {
		defer func() {
			if err := bot.UnregisterSlashCommands(dg, guildID, registeredCommands); err != nil {
				log.Printf("Error unregistering slash commands: %v", err)
			}
		}()
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")

	// Wait for signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down...")
	return nil
}

func printNotes(cmd *cobra.Command, configPath, userID string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	noteStore, closeNotes, err := openNoteStore(cfg, config.ReadSecrets())
	if err != nil {
		return err
	}
	defer closeNotes()

	lines, err := noteStore.ReadAll(userID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
