package summary

import (
	"math/big"
	"regexp"
	"sync"
)

var (
	plottingPattern = regexp.MustCompile(`(?i)initial plotting (?:is )?(?:complete|finished)`)
	blockPattern    = regexp.MustCompile(`(?i)successfully signed reward hash`)
	votePattern     = regexp.MustCompile(`(?i)successfully signed vote`)
	rewardPattern   = regexp.MustCompile(`(?i)received reward of (\d+)`)
)

// Tracker folds node and farmer log lines into the summary file.
type Tracker struct {
	sync.Mutex
	filename string
}

func NewTracker(filename string) *Tracker {
	return &Tracker{filename: filename}
}

// Observe updates the summary when line reports plotting completion, a
// farmed block, a vote or a reward. It tells whether the file changed.
func (it *Tracker) Observe(line string) (bool, error) {
	var change func(*Summary) error
	switch {
	case plottingPattern.MatchString(line):
		change = func(record *Summary) error {
			record.InitialPlottingFinished = true
			return nil
		}
	case blockPattern.MatchString(line):
		change = func(record *Summary) error {
			record.FarmedBlockCount++
			return nil
		}
	case votePattern.MatchString(line):
		change = func(record *Summary) error {
			record.VoteCount++
			return nil
		}
	default:
		found := rewardPattern.FindStringSubmatch(line)
		if found == nil {
			return false, nil
		}
		amount, ok := new(big.Int).SetString(found[1], 10)
		if !ok {
			return false, nil
		}
		change = func(record *Summary) error {
			return record.AddReward(amount)
		}
	}

	it.Lock()
	defer it.Unlock()
	var failure error
	err := Update(it.filename, func(record *Summary) {
		failure = change(record)
	})
	if failure != nil {
		return false, failure
	}
	return err == nil, err
}
