package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		o.println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) println(args ...any) {
	_, _ = fmt.Fprintln(o.w, args...)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
	case DailyResult:
		o.printf("Claimed %d candy, balance %d\n", v.Reward, v.Balance)
		o.printf("Next claim: %s\n", v.NextClaim.Format(time.RFC1123))
	case BalanceResult:
		o.printf("Balance: %d\n", v.Balance)
		o.printf("Total earned: %d\n", v.TotalEarned)
	case GiveResult:
		o.printf("Gave %d candy to %s, balance %d\n", v.Amount, v.Target, v.Balance)
	case Profile:
		o.printProfile(v)
	case PlayerLeaderboard:
		o.printPlayerLeaderboard(v)
	case ClanLeaderboard:
		o.printClanLeaderboard(v)
	case Challenges:
		o.printChallenges(v)
	case ClaimResult:
		o.printf("Claimed: %s\n", strings.Join(v.Claimed, ", "))
		o.printf("Candy: +%d, licorice: +%d, balance %d\n", v.Candy, v.Licorice, v.Balance)
	case PromoResult:
		o.printf("Redeemed %s for %d candy, balance %d\n", v.Code, v.Reward, v.Balance)
	case Shop:
		o.printShop(v)
	case PurchaseResult:
		o.printf("Bought %s for %d, balance %d\n", v.Item, v.Price, v.Balance)
		if v.Equipped != "" {
			o.printf("Equipped: %s\n", v.Equipped)
		}
	case Inventory:
		o.printInventory(v)
	case UseResult:
		o.printUseResult(v)
	case StealInitiated:
		o.printf("Steal %s: %s is trying to steal from %s\n", v.Token, v.Initiator, v.Target)
		if v.Multiplier > 1 {
			o.printf("Sweet payout multiplier: x%d\n", v.Multiplier)
		}
		o.printf("Expires: %s\n", v.ExpiresAt.Format(time.RFC1123))
	case StealResolution:
		o.printStealResolution(v)
	case DuelInitiated:
		o.printf("Duel %s: %s challenges %s for %d candy\n", v.Token, v.Initiator, v.Target, v.Ante)
		o.printf("Expires: %s\n", v.ExpiresAt.Format(time.RFC1123))
	case DuelResolution:
		o.printDuelResolution(v)
	case Clan:
		o.printClan(v)
	case ClanLeft:
		o.printf("Left clan %s\n", v.Clan)
	case RaidResult:
		o.printRaidResult(v)
	case AdjustResult:
		o.printf("Adjusted %s by %d, balance %d\n", v.Target, v.Amount, v.Balance)
	case Promo:
		o.printPromo(v)
	case Promos:
		if len(v) == 0 {
			o.println("No promo codes")
		}
		for _, p := range v {
			o.printPromo(p)
		}
	case CooldownReset:
		if v.Cleared {
			o.printf("Cleared %s cooldown for %s\n", v.Kind, v.Subject)
		} else {
			o.printf("No %s cooldown held by %s\n", v.Kind, v.Subject)
		}
	case Stats:
		o.printStats(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printProfile(p Profile) {
	o.printf("Player: %s\n", p.Player)
	o.printf("Balance: %d (earned %d)\n", p.Balance, p.TotalEarned)
	if p.Costume != "" {
		o.printf("Costume: %s (+%d)\n", p.Costume, p.Bonus)
	}
	o.printf("Licorice: %d\n", p.Licorice)
	o.printf("Duel wins: %d\n", p.DuelWins)
	if p.Clan != "" {
		o.printf("Clan: %s\n", p.Clan)
	}
}

func (o *Output) printPlayerLeaderboard(ranks PlayerLeaderboard) {
	if len(ranks) == 0 {
		o.println("No players yet")
		return
	}
	for _, r := range ranks {
		o.printf("%3d. %s - %d\n", r.Rank, r.Player, r.TotalEarned)
	}
}

func (o *Output) printClanLeaderboard(ranks ClanLeaderboard) {
	if len(ranks) == 0 {
		o.println("No clans yet")
		return
	}
	for _, r := range ranks {
		o.printf("%3d. %s - %d (%d members)\n", r.Rank, r.Clan, r.Treasury, r.Members)
	}
}

func (o *Output) printChallenges(challenges Challenges) {
	for _, c := range challenges {
		mark := " "
		if c.Claimable {
			mark = "*"
		}
		o.printf("[%s] %s: %d/%d (reward %d %s)\n", mark, c.Name, c.Count, c.Target, c.Reward, c.RewardKind)
	}
}

func (o *Output) printShop(s Shop) {
	o.println("Costumes:")
	for _, c := range s.Costumes {
		owned := ""
		if c.Owned {
			owned = " [owned]"
		}
		o.printf("  %s - %s, +%d per daily, %d candy%s\n", c.ID, c.Name, c.Bonus, c.Price, owned)
	}
	o.println("Potions:")
	for _, p := range s.Potions {
		o.printf("  %s - %s, %s, %d candy\n", p.Kind, p.Name, potionDetail(p), p.Price)
	}
	o.printf("Licorice: %d candy\n", s.LicoricePrice)
	if s.ClanLicorice {
		o.printf("Clan licorice: %d candy\n", s.ClanLicoricePrice)
	}
}

func potionDetail(p Potion) string {
	if p.Duration > 0 {
		return fmt.Sprintf("lasts %s", p.Duration)
	}
	return fmt.Sprintf("+%d", p.Bonus)
}

func (o *Output) printInventory(inv Inventory) {
	o.println("Costumes:")
	for _, c := range inv.Costumes {
		equipped := ""
		if c.Equipped {
			equipped = " [equipped]"
		}
		o.printf("  %s - %s%s\n", c.ID, c.Name, equipped)
	}
	o.println("Potions:")
	for _, p := range inv.Potions {
		o.printf("  %s x%d\n", p.Kind, p.Count)
	}
	if len(inv.ActivePotions) > 0 {
		kinds := make([]string, 0, len(inv.ActivePotions))
		for kind := range inv.ActivePotions {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		o.printf("Active: %s\n", strings.Join(kinds, ", "))
	}
	o.printf("Licorice: %d\n", inv.Licorice)
	if inv.ClanLicorice != nil {
		o.printf("Clan licorice: %d\n", *inv.ClanLicorice)
	}
}

func (o *Output) printUseResult(u UseResult) {
	if u.Equipped != "" {
		o.printf("Equipped %s\n", u.Equipped)
		return
	}
	o.printf("Used %s\n", u.Item)
	if u.Effect != nil && u.Effect.ExpiresAt != nil {
		o.printf("Active until %s\n", u.Effect.ExpiresAt.Format(time.RFC1123))
	}
}

func (o *Output) printStealResolution(r StealResolution) {
	switch r.Outcome {
	case "taken":
		o.printf("%s stole %d candy from %s (x%d)\n", r.Initiator, r.Gained, r.Target, r.Multiplier)
	case "shielded":
		o.printf("%s was shielded, %s got nothing\n", r.Target, r.Initiator)
	case "tricked":
		o.printf("%s tricked %s", r.Target, r.Initiator)
		if r.Muted > 0 {
			o.printf(", muted for %s", r.Muted)
		}
		o.println()
	default:
		o.printf("Steal %s: %s\n", r.Token, r.Outcome)
	}
}

func (o *Output) printDuelResolution(r DuelResolution) {
	o.printf("%s threw %s, %s threw %s\n", r.Initiator, r.InitiatorChoice, r.Target, r.TargetChoice)
	if r.Tie {
		o.printf("Tie! Each player receives %d\n", r.Payout)
		return
	}
	o.printf("Winner: %s (+%d)\n", r.Winner, r.Payout)
}

func (o *Output) printClan(c Clan) {
	o.printf("Clan: %s\n", c.Name)
	o.printf("Owner: %s\n", c.Owner)
	o.printf("Treasury: %d\n", c.Treasury)
	o.printf("Licorice: %d\n", c.Licorice)
	o.printf("Members (%d):\n", c.Size)
	o.printf("  - %s [owner]\n", c.Owner)
	for _, m := range c.Members {
		o.printf("  - %s\n", m)
	}
}

func (o *Output) printRaidResult(r RaidResult) {
	o.printf("%s raided %s for %d candy: %s\n", r.Attacker, r.Target, r.Cost, r.Outcome)
	if r.Outcome == "succeeded" {
		o.printf("Stolen: %d (x%d)\n", r.Stolen, r.Multiplier)
	} else if r.Outcome == "failed" {
		o.printf("Chance was %.0f%%\n", r.Chance*100)
	}
}

func (o *Output) printPromo(p Promo) {
	limit := "unlimited"
	if p.MaxUses > 0 {
		limit = fmt.Sprintf("%d", p.MaxUses)
	}
	o.printf("%s - %d candy, used %d/%s\n", p.Code, p.Reward, p.Uses, limit)
}

func (o *Output) printStats(s Stats) {
	o.printf("Players: %d\n", s.Players)
	o.printf("Clans: %d\n", s.Clans)
	o.printf("Promos: %d\n", s.Promos)
	o.printf("Chats: %d\n", s.Chats)
	o.printf("Pending decisions: %d\n", s.Pending)
	o.printf("Active raids: %d\n", s.ActiveRaids)
	o.printf("Recent stealers: %d\n", s.RecentStealers)
}
