package discord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Component actions
const (
	actionJoin   = "join"
	actionStart  = "start"
	actionRole   = "role"
	actionReady  = "ready"
	actionVote   = "vote"
	actionVoting = "voting"
)

// skipVote is the menu value of a skipped ballot; menu values cannot be empty
const skipVote = "-skip-"

// roomEmbed renders what everyone in the channel may see of a room
func roomEmbed(room *models.Room, slots []*models.PlayerSlot, state *models.GameState, readyCount, readyTarget int, announcement *messaging.GetPhaseMessageOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Room %s", room.Code),
		Color: colorTown,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Code", Value: room.Code, Inline: true},
			{Name: "Mode", Value: string(room.GameMode), Inline: true},
		},
	}
	if announcement != nil {
		embed.Title = announcement.Title
		embed.Description = announcement.Message
	}

	if room.Status.IsWaiting() {
		embed.Description = fmt.Sprintf("Join with the button or `/mafia join code:%s`. The host starts the game.", room.Code)
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Mafia", Value: fmt.Sprintf("%d", room.MafiaCount), Inline: true},
			&discordgo.MessageEmbedField{Name: "Timer", Value: fmt.Sprintf("%d min", room.TimerMinutes), Inline: true},
		)
	}

	if state != nil && room.Status.IsPlaying() {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Phase", Value: string(state.Phase), Inline: true},
			&discordgo.MessageEmbedField{Name: "Round", Value: fmt.Sprintf("%d", state.RoundNumber), Inline: true},
		)
		if readyTarget > 0 {
			label := "Ready"
			if state.Phase == models.PhaseVoting {
				label = "Voted"
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   label,
				Value:  fmt.Sprintf("%d/%d", readyCount, readyTarget),
				Inline: true,
			})
		}
		switch {
		case state.Phase == models.PhaseNightIntro || state.Phase == models.PhaseNight:
			embed.Color = colorNight
		case state.Winner == models.TeamMafia:
			embed.Color = colorMafia
		}
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  fmt.Sprintf("Players (%d)", len(slots)),
		Value: playerList(slots, state),
	})
	return embed
}

func playerList(slots []*models.PlayerSlot, state *models.GameState) string {
	if len(slots) == 0 {
		return "Nobody yet"
	}

	var b strings.Builder
	for _, slot := range slots {
		b.WriteString(playerLine(slot, state))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// playerLine shows a role only once the player is out or the game is over
func playerLine(slot *models.PlayerSlot, state *models.GameState) string {
	name := fmt.Sprintf("%s **%s**", slot.Avatar, slot.PlayerName)
	if !slot.IsAlive {
		name = fmt.Sprintf("%s ~~%s~~ 💀", slot.Avatar, slot.PlayerName)
	}
	if slot.IsHost {
		name += " (host)"
	}

	complete := state != nil && state.Phase == models.PhaseComplete
	if slot.HasRole() && (!slot.IsAlive || complete) {
		name += " - " + roleTitle(slot.Role)
	}
	if state != nil && state.IsReady(slot.ID) && !complete {
		name += " ✅"
	}
	return name
}

func roleTitle(role models.Role) string {
	if info, ok := models.RoleCatalog[role]; ok {
		return info.Title
	}
	return string(role)
}

// roleEmbed is the private role card of one player
func roleEmbed(slot *models.PlayerSlot) *discordgo.MessageEmbed {
	info := models.RoleCatalog[slot.Role]
	color := colorTown
	if info.Team == models.TeamMafia {
		color = colorMafia
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("You are the %s", roleTitle(slot.Role)),
		Description: info.Description,
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Keep it secret. Tap Ready when you have memorized it."},
	}
}

// roomComponents returns the buttons that fit the room's current phase
func roomComponents(command string, room *models.Room, slots []*models.PlayerSlot, state *models.GameState) []discordgo.MessageComponent {
	if room.Status.IsWaiting() {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Join",
						Style:    discordgo.SuccessButton,
						CustomID: componentID(command, actionJoin, room.Code),
					},
					discordgo.Button{
						Label:    "Start",
						Style:    discordgo.PrimaryButton,
						CustomID: componentID(command, actionStart, room.ID),
					},
				},
			},
		}
	}

	if state == nil {
		return nil
	}

	switch {
	case state.Phase.IsRevealStage():
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Show my role",
						Style:    discordgo.PrimaryButton,
						CustomID: componentID(command, actionRole, room.ID),
					},
				},
			},
		}
	case state.Phase == models.PhaseDay:
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Start voting",
						Style:    discordgo.DangerButton,
						CustomID: componentID(command, actionVoting, room.ID),
					},
				},
			},
		}
	case state.Phase == models.PhaseVoting:
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{voteMenu(command, room.ID, slots)},
			},
		}
	default:
		return nil
	}
}

// voteMenu lists every alive player plus a skip option
func voteMenu(command, roomID string, slots []*models.PlayerSlot) discordgo.SelectMenu {
	options := make([]discordgo.SelectMenuOption, 0, len(slots)+1)
	for _, slot := range slots {
		if !slot.IsAlive {
			continue
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: slot.PlayerName,
			Value: slot.PlayerName,
		})
	}
	options = append(options, discordgo.SelectMenuOption{
		Label:       "Skip",
		Value:       skipVote,
		Description: "Vote for nobody this round",
	})

	return discordgo.SelectMenu{
		CustomID:    componentID(command, actionVote, roomID),
		Placeholder: "Who is the mafia?",
		Options:     options,
	}
}

// readyButton follows a revealed role
func readyButton(command, roomID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Ready",
					Style:    discordgo.SuccessButton,
					CustomID: componentID(command, actionReady, roomID),
				},
			},
		},
	}
}

// sortNames orders tally names by votes received, then alphabetically
func sortNames(names []string, counts map[string]int) {
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
}
