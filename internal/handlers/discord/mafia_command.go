package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/services/game"
	"github.com/KirkDiggler/secretmafia/internal/services/history"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"github.com/KirkDiggler/secretmafia/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const noRoomMessage = "No game in this channel. Use `/mafia create` or `/mafia join` first."

// MafiaCommandConfig holds the services the /mafia command drives
type MafiaCommandConfig struct {
	SessionService session.Service
	GameService    game.Service
	HistoryService history.Service
	Messaging      messaging.Service
	Logger         *zap.Logger
}

// MafiaCommand handles the /mafia command and the components it posts
type MafiaCommand struct {
	BaseCommand
	sessionService session.Service
	gameService    game.Service
	historyService history.Service
	messaging      messaging.Service
	rooms          *channelRooms
	logger         *zap.Logger
}

// NewMafiaCommand creates a new mafia command handler
func NewMafiaCommand(cfg *MafiaCommandConfig) *MafiaCommand {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	modeChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Simple", Value: string(models.GameModeSimple)},
		{Name: "Advanced", Value: string(models.GameModeAdvanced)},
	}
	playerOption := func(name, description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: description,
		}
	}

	return &MafiaCommand{
		BaseCommand: BaseCommand{
			Name:        "mafia",
			Description: "Secret Mafia party game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Open a new room in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "Game mode",
							Choices:     modeChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join a room by its code",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "code",
							Description: "The 6 character room code",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Leave the room; the host closes it for everyone",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "settings",
					Description: "Change room settings (host only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "mafia",
							Description: "Number of mafia players",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "timer",
							Description: "Discussion timer in minutes",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "Game mode",
							Choices:     modeChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Deal roles and start the game (host only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the room",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "night",
					Description: "Resolve the night (host only, advanced mode)",
					Options: []*discordgo.ApplicationCommandOption{
						playerOption("kill", "Who the mafia chose"),
						playerOption("save", "Who the doctor protected"),
						playerOption("investigate", "Who the detective checked"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "tally",
					Description: "Count the votes (host only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show your game history",
				},
			},
		},
		sessionService: cfg.SessionService,
		gameService:    cfg.GameService,
		historyService: cfg.HistoryService,
		messaging:      cfg.Messaging,
		rooms:          newChannelRooms(),
		logger:         logger,
	}
}

// Handle processes a Discord interaction for the mafia command
func (c *MafiaCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "create":
		return c.handleCreate(ctx, s, i, opts)
	case "join":
		return c.join(ctx, s, i, stringOption(opts, "code"))
	case "stats":
		return c.handleStats(ctx, s, i)
	}

	roomID, ok := c.rooms.get(i.ChannelID)
	if !ok {
		return RespondWithError(s, i, noRoomMessage)
	}

	switch sub.Name {
	case "leave":
		return c.handleLeave(ctx, s, i, roomID)
	case "settings":
		return c.handleSettings(ctx, s, i, roomID, opts)
	case "start":
		return c.start(ctx, s, i, roomID)
	case "status":
		return c.handleStatus(ctx, s, i, roomID)
	case "night":
		return c.handleNight(ctx, s, i, roomID, opts)
	case "tally":
		return c.handleTally(ctx, s, i, roomID)
	default:
		return errors.New("unknown subcommand")
	}
}

// HandleComponent processes the buttons and menus posted by the command
func (c *MafiaCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, action, value string) error {
	ctx := context.Background()

	switch action {
	case actionJoin:
		return c.join(ctx, s, i, value)
	case actionStart:
		return c.start(ctx, s, i, value)
	case actionRole:
		return c.handleRole(ctx, s, i, value)
	case actionReady:
		return c.handleReady(ctx, s, i, value)
	case actionVote:
		return c.handleVote(ctx, s, i, value)
	case actionVoting:
		return c.handleStartVoting(ctx, s, i, value)
	default:
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown action: %s", action))
	}
}

func (c *MafiaCommand) handleCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	deviceID, name := interactionUser(i)

	output, err := c.sessionService.CreateRoom(ctx, &session.CreateRoomInput{
		DeviceID:   deviceID,
		PlayerName: name,
		Avatar:     models.DefaultAvatar,
		GameMode:   models.GameMode(stringOption(opts, "mode")),
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}
	c.rooms.set(i.ChannelID, output.Room.ID)

	slots := []*models.PlayerSlot{output.Slot}
	return RespondWithEmbed(s, i,
		roomEmbed(output.Room, slots, nil, 0, 0, nil),
		roomComponents(c.Name, output.Room, slots, nil))
}

func (c *MafiaCommand) join(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, code string) error {
	deviceID, name := interactionUser(i)

	output, err := c.sessionService.JoinRoom(ctx, &session.JoinRoomInput{
		Code:       code,
		DeviceID:   deviceID,
		PlayerName: name,
		Avatar:     models.DefaultAvatar,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}
	c.rooms.set(i.ChannelID, output.Room.ID)

	embed := roomEmbed(output.Room, output.Slots, nil, 0, 0, nil)
	msg, err := c.messaging.GetJoinRoomMessage(ctx, &messaging.GetJoinRoomMessageInput{
		PlayerName:    output.Slot.PlayerName,
		Code:          output.Room.Code,
		Rejoined:      output.Rejoined,
		PreferredTone: messaging.ToneDramatic,
	})
	if err == nil {
		embed.Title = msg.Title
		embed.Description = msg.Message
	}

	return RespondWithEmbed(s, i, embed, roomComponents(c.Name, output.Room, output.Slots, nil))
}

func (c *MafiaCommand) handleLeave(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	deviceID, name := interactionUser(i)

	output, err := c.sessionService.LeaveRoom(ctx, &session.LeaveRoomInput{
		RoomID:   roomID,
		DeviceID: deviceID,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	if !output.RoomClosed {
		return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("%s left the room.", name),
			Color:       colorTown,
		}, nil)
	}

	c.rooms.forget(i.ChannelID)
	notice := &discordgo.MessageEmbed{Title: "Game ended", Description: "The host has ended the game.", Color: colorError}
	if msg, err := c.messaging.GetRoomClosedMessage(ctx); err == nil {
		notice.Title = msg.Title
		notice.Description = msg.Message
	}
	return RespondWithEmbed(s, i, notice, nil)
}

func (c *MafiaCommand) handleSettings(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	deviceID, _ := interactionUser(i)

	input := &session.UpdateRoomSettingsInput{RoomID: roomID, DeviceID: deviceID}
	if opt, ok := opts["mafia"]; ok {
		mafia := int(opt.IntValue())
		input.MafiaCount = &mafia
	}
	if opt, ok := opts["timer"]; ok {
		timer := int(opt.IntValue())
		input.TimerMinutes = &timer
	}
	if opt, ok := opts["mode"]; ok {
		mode := models.GameMode(opt.StringValue())
		input.GameMode = &mode
	}

	output, err := c.sessionService.UpdateRoomSettings(ctx, input)
	if err != nil {
		return c.fail(ctx, s, i, err)
	}
	if !output.Updated {
		return RespondWithError(s, i, "Only the host can change the settings.")
	}

	return c.respondRoom(ctx, s, i, roomID, deviceID)
}

func (c *MafiaCommand) start(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	deviceID, _ := interactionUser(i)

	if _, err := c.gameService.StartGame(ctx, &game.StartGameInput{
		RoomID:   roomID,
		DeviceID: deviceID,
	}); err != nil {
		return c.fail(ctx, s, i, err)
	}
	c.rooms.set(i.ChannelID, roomID)

	return c.respondRoom(ctx, s, i, roomID, deviceID)
}

func (c *MafiaCommand) handleStatus(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	deviceID, _ := interactionUser(i)
	return c.respondRoom(ctx, s, i, roomID, deviceID)
}

// handleRole shows the caller their role privately, with the Ready button
func (c *MafiaCommand) handleRole(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	deviceID, _ := interactionUser(i)

	output, err := c.gameService.GetGame(ctx, &game.GetGameInput{RoomID: roomID, DeviceID: deviceID})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}
	if output.Self == nil || !output.Self.HasRole() {
		return RespondWithError(s, i, "You do not have a role in this game.")
	}

	var components []discordgo.MessageComponent
	if output.State.Phase.IsRevealStage() && !output.State.IsReady(output.Self.ID) {
		components = readyButton(c.Name, roomID)
	}
	return RespondWithEphemeralEmbed(s, i, roleEmbed(output.Self), components)
}

// handleReady marks the caller ready, then lets the host side advance the game
func (c *MafiaCommand) handleReady(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	deviceID, _ := interactionUser(i)

	if _, err := c.gameService.MarkReady(ctx, &game.MarkReadyInput{
		RoomID:   roomID,
		DeviceID: deviceID,
	}); err != nil {
		return c.fail(ctx, s, i, err)
	}

	// Replacing the role card hides it again
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    "You are ready. Waiting for the others...",
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		},
	}); err != nil {
		return err
	}

	c.reconcile(ctx, s, i.ChannelID, roomID, deviceID)
	return nil
}

func (c *MafiaCommand) handleVote(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	deviceID, _ := interactionUser(i)

	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return RespondWithError(s, i, "Pick a player or skip.")
	}
	target := values[0]
	if target == skipVote {
		target = ""
	}

	output, err := c.gameService.CastVote(ctx, &game.CastVoteInput{
		RoomID:   roomID,
		DeviceID: deviceID,
		Target:   target,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	text := fmt.Sprintf("You voted for %s.", output.Target)
	if output.Skipped {
		text = "You skipped this vote."
	}
	if err := RespondWithEphemeralMessage(s, i, text); err != nil {
		return err
	}

	c.reconcile(ctx, s, i.ChannelID, roomID, deviceID)
	return nil
}

func (c *MafiaCommand) handleStartVoting(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	deviceID, _ := interactionUser(i)

	if _, err := c.gameService.StartVoting(ctx, &game.StartVotingInput{
		RoomID:   roomID,
		DeviceID: deviceID,
	}); err != nil {
		return c.fail(ctx, s, i, err)
	}

	return c.respondRoom(ctx, s, i, roomID, deviceID)
}

func (c *MafiaCommand) handleNight(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	deviceID, _ := interactionUser(i)

	snap, err := c.gameService.GetGame(ctx, &game.GetGameInput{RoomID: roomID, DeviceID: deviceID})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}
	if snap.State.Phase == models.PhaseNightIntro {
		if _, err := c.gameService.CompleteNightIntro(ctx, &game.CompleteNightIntroInput{
			RoomID:   roomID,
			DeviceID: deviceID,
		}); err != nil {
			return c.fail(ctx, s, i, err)
		}
	}

	output, err := c.gameService.ResolveNight(ctx, &game.ResolveNightInput{
		RoomID:          roomID,
		DeviceID:        deviceID,
		MafiaTarget:     stringOption(opts, "kill"),
		DoctorTarget:    stringOption(opts, "save"),
		DetectiveTarget: stringOption(opts, "investigate"),
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	if err := c.respondRoom(ctx, s, i, roomID, deviceID); err != nil {
		return err
	}

	if output.Investigation != nil {
		verdict := "innocent"
		if output.Investigation.IsMafia {
			verdict = "MAFIA"
		}
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: fmt.Sprintf("Detective result: %s is %s.", output.Investigation.Name, verdict),
			Flags:   discordgo.MessageFlagsEphemeral,
		}); err != nil {
			c.logger.Warn("Failed to send investigation", zap.String("room_id", roomID), zap.Error(err))
		}
	}

	if output.Winner != "" {
		c.recordGame(ctx, roomID, deviceID)
	}
	return nil
}

func (c *MafiaCommand) handleTally(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	deviceID, _ := interactionUser(i)

	output, err := c.gameService.ResolveVotes(ctx, &game.ResolveVotesInput{
		RoomID:   roomID,
		DeviceID: deviceID,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	snap, err := c.gameService.GetGame(ctx, &game.GetGameInput{RoomID: roomID, DeviceID: deviceID})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	embeds := []*discordgo.MessageEmbed{}
	msg, err := c.messaging.GetVoteResultMessage(ctx, &messaging.GetVoteResultMessageInput{
		Result:        output.Result,
		Eliminated:    output.Eliminated,
		PreferredTone: messaging.ToneDramatic,
	})
	if err == nil {
		color := colorTown
		if output.Eliminated != nil && models.IsMafiaRole(output.Eliminated.Role) {
			color = colorMafia
		}
		embeds = append(embeds, &discordgo.MessageEmbed{
			Title:       msg.Title,
			Description: msg.Message,
			Color:       color,
			Fields:      tallyFields(output.Result.Counts),
		})
	}
	embed, components := c.render(ctx, snap)
	embeds = append(embeds, embed)

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	}); err != nil {
		return err
	}

	if output.Winner != "" {
		c.recordGame(ctx, roomID, deviceID)
	}
	return nil
}

func (c *MafiaCommand) handleStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	deviceID, _ := interactionUser(i)

	stats, err := c.historyService.GetPlayerStats(ctx, &history.GetPlayerStatsInput{DeviceID: deviceID})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Your games",
		Description: "No finished games yet.",
		Color:       colorTown,
	}
	if len(stats) > 0 {
		var b strings.Builder
		for _, stat := range stats {
			fmt.Fprintf(&b, "**%s**: %d played, %d mafia, %d town\n", stat.Name, stat.GamesPlayed, stat.TimesMafia, stat.TimesTown)
		}
		embed.Description = b.String()
	}
	return RespondWithEphemeralEmbed(s, i, embed, nil)
}

// reconcile runs the host's pass after a mark and announces a new phase
func (c *MafiaCommand) reconcile(ctx context.Context, s *discordgo.Session, channelID, roomID, deviceID string) {
	snap, err := c.gameService.GetGame(ctx, &game.GetGameInput{RoomID: roomID, DeviceID: deviceID})
	if err != nil {
		c.logger.Warn("Failed to load game", zap.String("room_id", roomID), zap.Error(err))
		return
	}

	output, err := c.gameService.Reconcile(ctx, &game.ReconcileInput{
		RoomID:   roomID,
		DeviceID: snap.Room.HostDeviceID,
	})
	if err != nil {
		c.logger.Warn("Failed to reconcile", zap.String("room_id", roomID), zap.Error(err))
		return
	}

	switch {
	case output.Advanced:
		snap, err = c.gameService.GetGame(ctx, &game.GetGameInput{RoomID: roomID, DeviceID: deviceID})
		if err != nil {
			c.logger.Warn("Failed to load game", zap.String("room_id", roomID), zap.Error(err))
			return
		}
		embed, components := c.render(ctx, snap)
		c.send(s, channelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		})
	case output.AllVoted:
		content := "Everyone has voted."
		if host := mention(snap.Room.HostDeviceID); host != "" {
			content += " " + host
		}
		content += " Use `/mafia tally` to count the votes."
		c.send(s, channelID, &discordgo.MessageSend{Content: content})
	}
}

func (c *MafiaCommand) send(s *discordgo.Session, channelID string, msg *discordgo.MessageSend) {
	if _, err := s.ChannelMessageSendComplex(channelID, msg); err != nil {
		c.logger.Warn("Failed to send channel message", zap.String("channel_id", channelID), zap.Error(err))
	}
}

// recordGame stores the finished game in the history of every player
func (c *MafiaCommand) recordGame(ctx context.Context, roomID, deviceID string) {
	snap, err := c.gameService.GetGame(ctx, &game.GetGameInput{RoomID: roomID, DeviceID: deviceID})
	if err != nil {
		c.logger.Warn("Failed to load finished game", zap.String("room_id", roomID), zap.Error(err))
		return
	}

	for _, slot := range snap.Slots {
		if _, err := c.historyService.RecordGame(ctx, &history.RecordGameInput{
			DeviceID: slot.DeviceID,
			Room:     snap.Room,
			Slots:    snap.Slots,
		}); err != nil {
			c.logger.Warn("Failed to record game",
				zap.String("room_id", roomID),
				zap.String("device_id", slot.DeviceID),
				zap.Error(err))
		}
	}
}

// respondRoom answers with the room as it is now
func (c *MafiaCommand) respondRoom(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID, deviceID string) error {
	snap, err := c.gameService.GetGame(ctx, &game.GetGameInput{RoomID: roomID, DeviceID: deviceID})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	embed, components := c.render(ctx, snap)
	return RespondWithEmbed(s, i, embed, components)
}

func (c *MafiaCommand) render(ctx context.Context, snap *game.GetGameOutput) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	var state *models.GameState
	var announcement *messaging.GetPhaseMessageOutput
	if snap.Room.Status.IsPlaying() {
		state = snap.State
		msg, err := c.messaging.GetPhaseMessage(ctx, &messaging.GetPhaseMessageInput{
			Phase:         state.Phase,
			GameMode:      snap.Room.GameMode,
			RoundNumber:   state.RoundNumber,
			NightResult:   state.NightResult,
			Winner:        state.Winner,
			PreferredTone: messaging.ToneDramatic,
		})
		if err == nil {
			announcement = msg
		}
	}

	return roomEmbed(snap.Room, snap.Slots, state, snap.ReadyCount, snap.ReadyTarget, announcement),
		roomComponents(c.Name, snap.Room, snap.Slots, state)
}

// fail answers with a user-facing error; unexpected errors are logged
func (c *MafiaCommand) fail(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	text := "Something went wrong. Please try again."
	output, msgErr := c.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr == nil {
		text = output.Message
	}
	if msgErr != nil || !output.UserError {
		c.logger.Error("Command failed", zap.String("channel_id", i.ChannelID), zap.Error(err))
	}
	return RespondWithError(s, i, text)
}

func tallyFields(counts map[string]int) []*discordgo.MessageEmbedField {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sortNames(names, counts)

	fields := make([]*discordgo.MessageEmbedField, 0, len(names))
	for _, name := range names {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  fmt.Sprintf("%d", counts[name]),
			Inline: true,
		})
	}
	return fields
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		opts[opt.Name] = opt
	}
	return opts
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}
