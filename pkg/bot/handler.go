package bot

import (
	"log"
	"time"

	"pocketbot/pkg/inference"
	"pocketbot/pkg/lastq"
	"pocketbot/pkg/notes"
	"pocketbot/pkg/quotes"

	"github.com/bwmarrin/discordgo"
)

const defaultChunkSize = 2000

type Handler struct {
	notes     notes.Store
	questions lastq.Store
	generator inference.Generator
	quotes    *quotes.Picker
	chunkSize int
	now       func() time.Time
}

func NewHandler(n notes.Store, q lastq.Store, g inference.Generator, p *quotes.Picker, chunkSize int) *Handler {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if p == nil {
		p = quotes.NewPicker(nil)
	}
	return &Handler{
		notes:     n,
		questions: q,
		generator: g,
		quotes:    p,
		chunkSize: chunkSize,
		now:       time.Now,
	}
}

// SetClock replaces the time source used by /time.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

func (h *Handler) Ready(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("Logged in as %s (ID: %s)", r.User.Username, r.User.ID)
}

// InteractionCreate is registered with discordgo and forwards to HandleInteraction.
func (h *Handler) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.HandleInteraction(s, i)
}

// HandleInteraction routes an application command to its handler.
func (h *Handler) HandleInteraction(s Responder, i *discordgo.InteractionCreate) {
	// Only handle application commands (slash commands)
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := SlashCommandHandlers[name]
	if !ok {
		log.Printf("Unknown slash command: %s", name)
		return
	}
	handler(h, s, i)
}
