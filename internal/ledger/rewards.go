package ledger

// BatchReward computes the total reward for a batch of unlocks with the
// volume bonus tiers: 10% at 10+ unlocks, a further 20% at 50+.
// The result is floored to whole points.
func BatchReward(unlockCount int) int64 {
	if unlockCount <= 0 {
		return 0
	}

	total := float64(unlockCount * RewardPerUnlock)
	if unlockCount >= 10 {
		total *= 1.1
	}
	if unlockCount >= 50 {
		total *= 1.2
	}
	return int64(total)
}

// Tier is a loyalty level derived from balance.
type Tier struct {
	Name     string
	Benefits []string
	NextTier string // empty at the top tier
	NextAt   int64  // balance required for the next tier
}

// Tier thresholds.
const (
	silverFloor  = 100
	goldFloor    = 500
	diamondFloor = 1000
)

// TierFor returns the holder tier for a balance.
func TierFor(balance int64) Tier {
	switch {
	case balance >= diamondFloor:
		return Tier{
			Name: "Diamond",
			Benefits: []string{
				"3 free unlocks per day",
				"Priority support",
				"Early access to new features",
				"Exclusive insights",
			},
		}
	case balance >= goldFloor:
		return Tier{
			Name:     "Gold",
			Benefits: []string{"2 free unlocks per day", "Priority support", "Early access"},
			NextTier: "Diamond",
			NextAt:   diamondFloor,
		}
	case balance >= silverFloor:
		return Tier{
			Name:     "Silver",
			Benefits: []string{"1 free unlock per day", "Community access"},
			NextTier: "Gold",
			NextAt:   goldFloor,
		}
	default:
		return Tier{
			Name:     "Bronze",
			Benefits: []string{"Earn rewards on unlocks"},
			NextTier: "Silver",
			NextAt:   silverFloor,
		}
	}
}
