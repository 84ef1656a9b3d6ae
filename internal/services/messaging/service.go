package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/random"
	"github.com/KirkDiggler/secretmafia/internal/services/game"
	"github.com/KirkDiggler/secretmafia/internal/services/history"
	"github.com/KirkDiggler/secretmafia/internal/services/roles"
	"github.com/KirkDiggler/secretmafia/internal/services/session"
	"github.com/KirkDiggler/secretmafia/internal/vote"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting message variants
	random random.Source
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var source random.Source
	if config != nil && config.Random != nil {
		source = config.Random
	} else {
		source = random.New(nil)
	}

	return &service{
		random: source,
	}, nil
}

// pick returns the first variant for the neutral tone and a random one otherwise
func (s *service) pick(tone MessageTone, variants []string) string {
	if tone == "" || tone == ToneNeutral || len(variants) == 1 {
		return variants[0]
	}
	return variants[s.random.Intn(len(variants))]
}

// GetJoinRoomMessage returns a message for when a player joins or rejoins a room
func (s *service) GetJoinRoomMessage(ctx context.Context, input *GetJoinRoomMessageInput) (*GetJoinRoomMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Rejoined {
		return &GetJoinRoomMessageOutput{
			Title: "Welcome back!",
			Message: s.pick(input.PreferredTone, []string{
				fmt.Sprintf("%s is back in room %s.", input.PlayerName, input.Code),
				fmt.Sprintf("%s slips back into the room. Nobody saw a thing.", input.PlayerName),
				fmt.Sprintf("Look who found their way back, %s.", input.PlayerName),
			}),
		}, nil
	}

	return &GetJoinRoomMessageOutput{
		Title: "Joined game!",
		Message: s.pick(input.PreferredTone, []string{
			fmt.Sprintf("%s joined room %s.", input.PlayerName, input.Code),
			fmt.Sprintf("A stranger named %s walks into town.", input.PlayerName),
			fmt.Sprintf("%s has arrived. Keep an eye on them.", input.PlayerName),
			fmt.Sprintf("Welcome, %s. Trust no one.", input.PlayerName),
		}),
	}, nil
}

// GetPhaseMessage returns the announcement for the phase a room entered
func (s *service) GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	output := &GetPhaseMessageOutput{}

	switch input.Phase {
	case models.PhaseHidePhones:
		output.Title = "Hide your screen"
		output.Message = "Make sure nobody else can see your phone."
	case models.PhaseRoleReveal:
		output.Title = "Your role"
		output.Message = "Memorize your role, then tap ready."
	case models.PhaseWaitingForPlayers:
		output.Title = "Waiting for players"
		output.Message = "Waiting for everyone to see their role."
	case models.PhaseNightIntro:
		output.Title = "Night Falls..."
		output.Message = s.pick(tone, []string{
			"Everyone close your eyes. Mafia, open your eyes.",
			"The town sleeps. Somewhere, the mafia wakes.",
			"Lights out. Mafia, it is your move.",
		})
	case models.PhaseNight:
		output.Title = "Night Phase"
		output.Message = "The mafia chooses a target. The doctor protects. The detective investigates."
	case models.PhaseDay:
		output.Title = fmt.Sprintf("Day %d", input.RoundNumber)
		output.Message = s.nightResultMessage(tone, input.NightResult)
	case models.PhaseVoting:
		output.Title = "Time to vote"
		if input.GameMode == models.GameModeSimple && input.RoundNumber > 1 {
			output.Title = fmt.Sprintf("Round %d vote", input.RoundNumber)
		}
		output.Message = s.pick(tone, []string{
			"Vote for the player you think is mafia, or skip.",
			"Point your finger. Majority rules.",
			"The town decides. Choose wisely.",
		})
	case models.PhaseComplete:
		switch input.Winner {
		case models.TeamTown:
			output.Title = "Town wins!"
			output.Message = s.pick(tone, []string{
				"The civilians found every member of the mafia.",
				"Justice is served. The streets are safe again.",
			})
		case models.TeamMafia:
			output.Title = "Mafia wins!"
			output.Message = s.pick(tone, []string{
				"The mafia now equal the civilians.",
				"The family takes over the town.",
			})
		default:
			output.Title = "Game over"
			output.Message = "The game has ended."
		}
	default:
		return nil, fmt.Errorf("unknown phase: %s", input.Phase)
	}

	return output, nil
}

func (s *service) nightResultMessage(tone MessageTone, result *models.NightResult) string {
	switch {
	case result == nil:
		return "A new day begins."
	case result.Eliminated != "":
		return s.pick(tone, []string{
			fmt.Sprintf("%s was eliminated!", result.Eliminated),
			fmt.Sprintf("The town wakes to find %s gone.", result.Eliminated),
		})
	case result.Saved:
		return s.pick(tone, []string{
			"No one was killed! The doctor saved the target.",
			"The mafia struck, but the doctor got there first.",
		})
	default:
		return "A peaceful night. No one was targeted."
	}
}

// GetVoteResultMessage returns the announcement of a resolved vote
func (s *service) GetVoteResultMessage(ctx context.Context, input *GetVoteResultMessageInput) (*GetVoteResultMessageOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Eliminated != nil {
		info := models.RoleCatalog[input.Eliminated.Role]
		message := "An innocent townsperson was eliminated..."
		if models.IsMafiaRole(input.Eliminated.Role) {
			message = "The town successfully eliminated a mafia member!"
		}
		return &GetVoteResultMessageOutput{
			Title:   fmt.Sprintf("%s was a %s", input.Eliminated.PlayerName, info.Title),
			Message: message,
		}, nil
	}

	output := &GetVoteResultMessageOutput{Title: "No one eliminated"}
	switch input.Result.Reason {
	case vote.ReasonTie:
		output.Message = s.pick(input.PreferredTone, []string{
			"It's a tie. Nobody leaves today.",
			"The town is split down the middle.",
		})
	default:
		output.Message = fmt.Sprintf("No majority. %d votes were needed.", input.Result.Threshold)
	}

	return output, nil
}

// GetRoomClosedMessage returns the notice shown when the host ends the game
func (s *service) GetRoomClosedMessage(ctx context.Context) (*GetRoomClosedMessageOutput, error) {
	return &GetRoomClosedMessageOutput{
		Title:   "Game ended",
		Message: "The host has ended the game.",
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input cannot be nil")
	}

	user := func(title, message string) (*GetErrorMessageOutput, error) {
		return &GetErrorMessageOutput{Title: title, Message: message, UserError: true}, nil
	}

	err := input.Err
	switch {
	case errors.Is(err, session.ErrRoomNotFound), errors.Is(err, game.ErrRoomNotFound):
		return user("Not found", "Game room not found or already started")
	case errors.Is(err, session.ErrNameTaken):
		return user("Name taken", "Someone in this room already uses that name")
	case errors.Is(err, session.ErrInvalidCode):
		return user("Invalid code", "Room codes are 6 letters and numbers")
	case errors.Is(err, session.ErrInvalidPlayerName):
		return user("Enter your name", "Names must be between 1 and 20 characters")
	case errors.Is(err, session.ErrRoomNotWaiting), errors.Is(err, game.ErrGameAlreadyStarted):
		return user("Already started", "This game has already started")
	case errors.Is(err, session.ErrNotInRoom), errors.Is(err, game.ErrNotInRoom):
		return user("Not in room", "You are not part of this game")
	case errors.Is(err, game.ErrNotHost):
		return user("Host only", "Only the host can do that")
	case errors.Is(err, roles.ErrNotEnoughPlayers):
		return user("Not enough players", "Simple games need 3 players and advanced games need 5")
	case errors.Is(err, roles.ErrInvalidMafiaCount), errors.Is(err, session.ErrInvalidMafiaCount):
		return user("Too many mafia", "The town must outnumber the mafia")
	case errors.Is(err, game.ErrAlreadyVoted):
		return user("Already voted", "You already voted this round")
	case errors.Is(err, game.ErrPlayerEliminated):
		return user("Eliminated", "Eliminated players cannot vote")
	case errors.Is(err, game.ErrInvalidTarget):
		return user("Invalid target", "Pick another player who is still alive")
	case errors.Is(err, game.ErrVotingIncomplete):
		return user("Still voting", "Not everyone has voted yet")
	case errors.Is(err, game.ErrAlreadyAdvanced), errors.Is(err, game.ErrInvalidPhase):
		return user("Game moved on", "The game has already moved to another phase")
	case errors.Is(err, game.ErrRosterChanged):
		return user("Players changed", "Players are still joining or leaving. Try starting again")
	case errors.Is(err, history.ErrGameNotComplete):
		return user("Game in progress", "Only finished games are recorded")
	}

	return &GetErrorMessageOutput{
		Title:   "Error",
		Message: "Something went wrong. Please try again.",
	}, nil
}
