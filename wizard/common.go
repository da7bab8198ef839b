package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/subspace/subspace-cli/pretty"
)

const (
	newline = '\n'
)

// Validator explains why a reply is rejected. Nil accepts it.
type Validator func(string) error

// Prompter asks line-buffered questions. A single reader is kept for the
// whole session so buffered input is not lost between questions.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	return &Prompter{in: reader, out: out}
}

func (it *Prompter) say(form string, details ...interface{}) {
	fmt.Fprintf(it.out, form, details...)
}

func (it *Prompter) readLine() (string, error) {
	reply, err := it.in.ReadString(newline)
	if err != nil && !(errors.Is(err, io.EOF) && len(reply) > 0) {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func memberValidation(members []string, erratic string) Validator {
	return func(input string) error {
		for _, member := range members {
			if input == member {
				return nil
			}
		}
		return errors.New(erratic)
	}
}

func regexpValidation(validator *regexp.Regexp, erratic string) Validator {
	return func(input string) error {
		if !validator.MatchString(input) {
			return errors.New(erratic)
		}
		return nil
	}
}

// Ask repeats the question until validator accepts the reply. Empty reply
// selects defaults.
func (it *Prompter) Ask(question, defaults string, validator Validator) (string, error) {
	for {
		it.say("%s? %s%s %s[%s]:%s ", pretty.Green, pretty.White, question, pretty.Grey, defaults, pretty.Reset)
		reply, err := it.readLine()
		it.say("\n")
		if err != nil {
			return "", err
		}
		if len(reply) == 0 {
			reply = defaults
		}
		if rejected := validator(reply); rejected != nil {
			it.say("%s%v%s\n\n", pretty.Red, rejected, pretty.Reset)
			continue
		}
		return reply, nil
	}
}

func ValidatePattern(pattern *regexp.Regexp, erratic string) Validator {
	return regexpValidation(pattern, erratic)
}

func ValidateMember(members []string, erratic string) Validator {
	return memberValidation(members, erratic)
}
