package operations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/hamlet"
	"github.com/subspace/subspace-cli/operations"
)

type recorder struct {
	calls []string
	farm  operations.FarmOptions
	wipe  operations.WipeOptions
	fail  error
}

func (it *recorder) Init(context.Context) error {
	it.calls = append(it.calls, "init")
	return it.fail
}

func (it *recorder) Farm(_ context.Context, options operations.FarmOptions) error {
	it.calls = append(it.calls, "farm")
	it.farm = options
	return it.fail
}

func (it *recorder) Wipe(_ context.Context, options operations.WipeOptions) error {
	it.calls = append(it.calls, "wipe")
	it.wipe = options
	return it.fail
}

func (it *recorder) Info(context.Context) error {
	it.calls = append(it.calls, "info")
	return it.fail
}

func (it *recorder) OpenLogs(context.Context) error {
	it.calls = append(it.calls, "open-logs")
	return it.fail
}

func TestDispatchCallsExactlyOneAction(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	cases := map[operations.Kind]string{
		operations.Init:     "init",
		operations.Farm:     "farm",
		operations.Wipe:     "wipe",
		operations.Info:     "info",
		operations.OpenLogs: "open-logs",
	}
	for kind, expected := range cases {
		sut := &recorder{}
		must_be.Nil(operations.Dispatch(context.Background(), operations.Command{Kind: kind}, sut))
		must_be.Equal([]string{expected}, sut.calls)
	}
}

func TestDispatchForwardsFlags(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut := &recorder{}
	must_be.Nil(operations.Dispatch(context.Background(), operations.Command{Kind: operations.Farm, Verbose: true, NoRotation: true}, sut))
	must_be.Equal(operations.FarmOptions{Verbose: true, NoRotation: true}, sut.farm)

	sut = &recorder{}
	must_be.Nil(operations.Dispatch(context.Background(), operations.Command{Kind: operations.Wipe, Node: true}, sut))
	must_be.Equal(operations.WipeOptions{Node: true}, sut.wipe)
}

func TestDispatchWrapsFailureWithHint(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	boom := errors.New("disk full")
	sut := &recorder{fail: boom}
	err := operations.Dispatch(context.Background(), operations.Command{Kind: operations.Info}, sut)
	wont_be.Nil(err)
	must_be.True(errors.Is(err, boom))

	var action *common.ActionError
	must_be.ErrorAs(err, &action)
	must_be.Equal("info", action.Action)
	must_be.Contains("forum.subspace.network", action.Suggestion())
	must_be.Equal("info failed: disk full", err.Error())
	must_be.Equal(common.ExitAction, common.ExitCodeFor(err))
}

func TestDispatchRejectsUnknownKind(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	sut := &recorder{}
	wont_be.Nil(operations.Dispatch(context.Background(), operations.Command{Kind: operations.Kind(42)}, sut))
	must_be.Length(0, sut.calls)
}
