package discord

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/KirkDiggler/secretmafia/internal/services/game"
	"github.com/KirkDiggler/secretmafia/internal/services/history"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"github.com/KirkDiggler/secretmafia/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     *zap.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	SessionService session.Service
	GameService    game.Service
	HistoryService history.Service
	Messaging      messaging.Service

	// Logger is optional
	Logger *zap.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.HistoryService == nil {
		return nil, errors.New("history service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		logger:     logger.Named("discord"),
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	mafiaCmd := NewMafiaCommand(&MafiaCommandConfig{
		SessionService: b.config.SessionService,
		GameService:    b.config.GameService,
		HistoryService: b.config.HistoryService,
		Messaging:      b.config.Messaging,
		Logger:         b.logger,
	})
	if err := b.RegisterCommand(mafiaCmd); err != nil {
		return fmt.Errorf("failed to register mafia command: %w", err)
	}

	b.logger.Info("Bot is now running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("Failed to delete command",
				zap.String("command", cmdName),
				zap.String("command_id", cmdID),
				zap.Error(err))
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord, per guild when a guild ID is set
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("Registered command",
		zap.String("command", cmd.GetName()),
		zap.String("command_id", createdCmd.ID),
		zap.String("guild_id", b.config.GuildID))

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("Error handling command", zap.String("command", name), zap.Error(err))
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("Error handling component interaction",
				zap.String("custom_id", i.MessageComponentData().CustomID),
				zap.Error(err))
		}
	}
}

// handleComponentInteraction routes buttons and menus to the command that created them
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID
	name, action, value, ok := parseComponentID(customID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}

	h, ok := b.commands[name].(ComponentHandler)
	if !ok {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
	return h.HandleComponent(s, i, action, value)
}

// componentID packs the owning command, the action and its argument into a custom ID
func componentID(command, action, value string) string {
	return command + ":" + action + ":" + value
}

func parseComponentID(customID string) (command, action, value string, ok bool) {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// channelRooms remembers which room a channel is playing
type channelRooms struct {
	mu    sync.RWMutex
	rooms map[string]string
}

func newChannelRooms() *channelRooms {
	return &channelRooms{rooms: make(map[string]string)}
}

func (c *channelRooms) set(channelID, roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[channelID] = roomID
}

func (c *channelRooms) get(channelID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	roomID, ok := c.rooms[channelID]
	return roomID, ok
}

func (c *channelRooms) forget(channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, channelID)
}

// interactionUser returns the caller's device ID and display name
func interactionUser(i *discordgo.InteractionCreate) (deviceID, name string) {
	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
		if i.Member.Nick != "" {
			return deviceIDFor(user.ID), i.Member.Nick
		}
	}
	if user == nil {
		return "", ""
	}
	name = user.GlobalName
	if name == "" {
		name = user.Username
	}
	return deviceIDFor(user.ID), name
}

// deviceIDFor namespaces Discord users so they never collide with app devices
func deviceIDFor(userID string) string {
	return "discord:" + userID
}

// mention turns a device ID back into a Discord mention; other devices get no mention
func mention(deviceID string) string {
	if userID, ok := strings.CutPrefix(deviceID, "discord:"); ok {
		return "<@" + userID + ">"
	}
	return ""
}
