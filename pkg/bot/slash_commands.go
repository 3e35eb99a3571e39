package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"pocketbot/pkg/inference"
	"pocketbot/pkg/notes"

	"github.com/bwmarrin/discordgo"
)

const (
	msgNoteSaved       = "📝 Note saved!"
	msgNotesHeader     = "📓 Your notes:\n"
	msgNoNotes         = "⚠ No notes found."
	msgAnswerPrefix    = "💬 **AI:** "
	msgAPIError        = "❌ Hugging Face API error. Maybe quota finished?"
	msgErrorPrefix     = "❌ An error occurred: "
	msgLastQuestion    = "🕑 Your last question was:\n> "
	msgNothingAskedYet = "You haven't asked anything yet."
	timeLayout         = "15:04:05"
)

// SlashCommands defines all available slash commands
var SlashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "hello",
		Description: "Say hello to the bot!",
	},
	{
		Name:        "time",
		Description: "Get current server time",
	},
	{
		Name:        "motivate",
		Description: "Get a motivational quote",
	},
	{
		Name:        "note",
		Description: "Save a personal note",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "content",
				Description: "The content of the note",
				Required:    true,
			},
		},
	},
	{
		Name:        "readnotes",
		Description: "Read your saved notes",
	},
	{
		Name:        "ask",
		Description: "Ask Hugging Face AI something",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "question",
				Description: "Your question for the AI",
				Required:    true,
			},
		},
	},
	{
		Name:        "lastquestion",
		Description: "Show your last asked question",
	},
}

// SlashCommandHandlers maps command names to their handler functions
var SlashCommandHandlers = map[string]func(h *Handler, s Responder, i *discordgo.InteractionCreate){
	"hello":        handleHelloCommand,
	"time":         handleTimeCommand,
	"motivate":     handleMotivateCommand,
	"note":         handleNoteCommand,
	"readnotes":    handleReadNotesCommand,
	"ask":          handleAskCommand,
	"lastquestion": handleLastQuestionCommand,
}

func handleHelloCommand(h *Handler, s Responder, i *discordgo.InteractionCreate) {
	_, userName, err := getUserFromInteraction(i)
	if err != nil {
		log.Printf("Error handling /hello: %v", err)
		return
	}
	respond(s, i, fmt.Sprintf("Hello %s, I am online!", userName))
}

func handleTimeCommand(h *Handler, s Responder, i *discordgo.InteractionCreate) {
	respond(s, i, "⏰ Current time: "+h.now().Format(timeLayout))
}

func handleMotivateCommand(h *Handler, s Responder, i *discordgo.InteractionCreate) {
	respond(s, i, h.quotes.Random())
}

// handleNoteCommand appends the note. Storage failures are logged and the
// interaction is left unanswered, so Discord shows its own failure notice.
func handleNoteCommand(h *Handler, s Responder, i *discordgo.InteractionCreate) {
	userID, _, err := getUserFromInteraction(i)
	if err != nil {
		log.Printf("Error handling /note: %v", err)
		return
	}

	if err := h.notes.Append(userID, stringOption(i, "content")); err != nil {
		log.Printf("Error saving note for user %s: %v", userID, err)
		return
	}
	respond(s, i, msgNoteSaved)
}

func handleReadNotesCommand(h *Handler, s Responder, i *discordgo.InteractionCreate) {
	userID, _, err := getUserFromInteraction(i)
	if err != nil {
		log.Printf("Error handling /readnotes: %v", err)
		return
	}

	lines, err := h.notes.ReadAll(userID)
	if errors.Is(err, notes.ErrNoNotes) {
		respond(s, i, msgNoNotes)
		return
	}
	if err != nil {
		log.Printf("Error reading notes for user %s: %v", userID, err)
		return
	}

	var b strings.Builder
	b.WriteString(msgNotesHeader)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	respond(s, i, b.String())
}

func handleAskCommand(h *Handler, s Responder, i *discordgo.InteractionCreate) {
	userID, _, err := getUserFromInteraction(i)
	if err != nil {
		log.Printf("Error handling /ask: %v", err)
		return
	}
	question := stringOption(i, "question")

	// The generation call regularly outlives Discord's 3 second window
	if err := deferResponse(s, i); err != nil {
		log.Printf("Error deferring /ask: %v", err)
		return
	}

	result := h.generator.Generate(context.Background(), question)

	for _, msg := range h.askReplies(userID, question, result) {
		if err := followup(s, i, msg); err != nil {
			log.Printf("Error sending /ask followup: %v", err)
			return
		}
	}
}

// askReplies turns a generation result into the followup messages to send,
// recording the question only when an answer came back.
func (h *Handler) askReplies(userID, question string, result inference.Result) []string {
	switch r := result.(type) {
	case inference.Answer:
		if err := h.questions.Set(userID, question); err != nil {
			log.Printf("Error recording last question for user %s: %v", userID, err)
		}
		chunks := chunkText(r.Text, h.chunkSize)
		if len(chunks) > 1 {
			return chunks
		}
		return []string{msgAnswerPrefix + r.Text}

	case inference.APIError:
		log.Printf("Text generation API error for user %s: %v", userID, r)
		return []string{msgAPIError}

	case inference.TransportError:
		log.Printf("Text generation transport error for user %s: %v", userID, r)
		return []string{msgErrorPrefix + r.Error()}

	case inference.MalformedResponse:
		log.Printf("Text generation returned a malformed response for user %s: %v", userID, r)
		return []string{msgErrorPrefix + r.Error()}

	default:
		return []string{msgErrorPrefix + fmt.Sprintf("unexpected result %T", result)}
	}
}

func handleLastQuestionCommand(h *Handler, s Responder, i *discordgo.InteractionCreate) {
	userID, _, err := getUserFromInteraction(i)
	if err != nil {
		log.Printf("Error handling /lastquestion: %v", err)
		return
	}

	q, ok, err := h.questions.Get(userID)
	if err != nil {
		log.Printf("Error reading last question for user %s: %v", userID, err)
		return
	}
	if !ok || q == "" {
		respond(s, i, msgNothingAskedYet)
		return
	}
	respond(s, i, msgLastQuestion+q)
}

// RegisterSlashCommands registers all slash commands with Discord
func RegisterSlashCommands(s *discordgo.Session, guildID string) ([]*discordgo.ApplicationCommand, error) {
	log.Println("Registering slash commands...")
	registeredCommands := make([]*discordgo.ApplicationCommand, len(SlashCommands))

	for i, cmd := range SlashCommands {
		// Register globally (guildID = "") or for a specific guild
		registeredCmd, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			log.Printf("Cannot create '%s' command: %v", cmd.Name, err)
			return nil, err
		}
		registeredCommands[i] = registeredCmd
		log.Printf("Registered command: %s", cmd.Name)
	}

	return registeredCommands, nil
}

// UnregisterSlashCommands removes all registered slash commands
func UnregisterSlashCommands(s *discordgo.Session, guildID string, commands []*discordgo.ApplicationCommand) error {
	log.Println("Unregistering slash commands...")

	for _, cmd := range commands {
		err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID)
		if err != nil {
			log.Printf("Cannot delete '%s' command: %v", cmd.Name, err)
			return err
		}
		log.Printf("Unregistered command: %s", cmd.Name)
	}

	return nil
}
