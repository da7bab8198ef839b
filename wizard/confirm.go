package wizard

import (
	"errors"
	"strings"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/pretty"
)

var (
	ErrConfirmationRequired = errors.New("confirmation required: answer in an interactive terminal, or remove the existing file first")
)

// ParseYesNo accepts y, yes, n and no in any case. Anything else fails
// with PromptParseError.
func ParseYesNo(question, answer string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, &common.PromptParseError{Question: question, Answer: answer}
}

// AskYesNo is a one-shot question: a malformed answer is an error, not a
// reason to ask again.
func (it *Prompter) AskYesNo(question string) (bool, error) {
	it.say("%s [y/n]: ", question)
	reply, err := it.readLine()
	if err != nil {
		return false, err
	}
	return ParseYesNo(question, reply)
}

// Confirm asks until a valid y/n reply is given, defaulting to no.
// With force it returns true without asking.
func (it *Prompter) Confirm(question string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if !pretty.Interactive {
		return false, ErrConfirmationRequired
	}

	validator := memberValidation([]string{"y", "Y", "n", "N"}, "Please answer 'y' or 'n'.")
	response, err := it.Ask(question, "n", validator)
	if err != nil {
		return false, err
	}

	confirmed := response == "y" || response == "Y"
	if !confirmed {
		it.say("%sOperation cancelled.%s\n", pretty.Grey, pretty.Reset)
	}
	return confirmed, nil
}
