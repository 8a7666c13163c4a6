package results

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/patience/board"
	"github.com/domino14/patience/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func sampleResult() *Result {
	r := &Result{
		DealID:   "13S12H",
		DealHash: 1 << 63,
		Seed:     42,
		Solvable: true,
		Score:    52,
		Elapsed:  1500 * time.Millisecond,
		Nodes:    1234,
		Finished: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	r.SetSolution([]board.Move{board.DrawMove(), board.MovMove(7, 3), board.ScoreMove(3)})
	return r
}

func TestSetSolution(t *testing.T) {
	assert.Equal(t, []string{"draw", "mov 7 3", "score 3"}, sampleResult().Solution)
}

func TestSQLiteSink(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteSink(ctx, filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Record(ctx, sampleResult()))
	lost := sampleResult()
	lost.Solvable = false
	lost.Solution = nil
	require.NoError(t, s.Record(ctx, lost))

	total, solvable, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, solvable)
}

func TestYAMLSinkAppends(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.yaml")
	for i := 0; i < 2; i++ {
		s, err := NewYAMLSink(path)
		require.NoError(t, err)
		r := sampleResult()
		r.Score = 40 + i
		require.NoError(t, s.Record(ctx, r))
		require.NoError(t, s.Close())
	}
	rs, err := ReadYAML(path)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, 40, rs[0].Score)
	assert.Equal(t, 41, rs[1].Score)
	assert.Equal(t, sampleResult().Elapsed, rs[1].Elapsed)
	assert.Equal(t, sampleResult().Solution, rs[1].Solution)
	assert.True(t, rs[1].Finished.Equal(sampleResult().Finished))

	none, err := ReadYAML(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

type fakePublisher struct {
	subjects []string
	msgs     [][]byte
}

func (f *fakePublisher) Publish(subj string, data []byte) error {
	f.subjects = append(f.subjects, subj)
	f.msgs = append(f.msgs, data)
	return nil
}

func TestNATSSink(t *testing.T) {
	pub := &fakePublisher{}
	s := &NATSSink{pub: pub, subject: "patience.results"}
	require.NoError(t, s.Record(context.Background(), sampleResult()))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "patience.results", pub.subjects[0])

	var got Result
	require.NoError(t, json.Unmarshal(pub.msgs[0], &got))
	assert.Equal(t, "13S12H", got.DealID)
	assert.True(t, got.Solvable)
	assert.NoError(t, s.Close())
}

type fakeDynamo struct {
	inputs []*dynamodb.PutItemInput
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput,
	optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.inputs = append(f.inputs, params)
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoDBSink(t *testing.T) {
	client := &fakeDynamo{}
	s := NewDynamoDBSinkWithClient(client, "games")
	require.NoError(t, s.Record(context.Background(), sampleResult()))
	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "games", *in.TableName)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "13S12H"}, in.Item["deck"])
	assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, in.Item["solveable"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "52"}, in.Item["score"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "1.5s"}, in.Item["time"])
}

type flakySink struct {
	failures int
	calls    int
	recorded int
	closed   bool
}

func (f *flakySink) Record(ctx context.Context, r *Result) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("unavailable")
	}
	f.recorded++
	return nil
}

func (f *flakySink) Close() error {
	f.closed = true
	return nil
}

func TestMultiSinkRetries(t *testing.T) {
	ok := &flakySink{}
	flaky := &flakySink{failures: 2}
	down := &flakySink{failures: 100}
	m := NewMultiSink(ok, flaky, down)
	m.SetRetries(3, time.Millisecond)

	err := m.Record(context.Background(), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink 2")
	assert.Equal(t, 1, ok.recorded)
	assert.Equal(t, 1, flaky.recorded)
	assert.Equal(t, 3, flaky.calls)
	assert.Equal(t, 0, down.recorded)
	assert.Equal(t, 3, down.calls)

	require.NoError(t, m.Close())
	assert.True(t, ok.closed && flaky.closed && down.closed)
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigResultSinks, []string{"log", "sqlite", "yaml"})
	cfg.Set(config.ConfigSQLitePath, filepath.Join(dir, "r.db"))
	cfg.Set(config.ConfigResultsYAMLPath, filepath.Join(dir, "r.yaml"))

	m, err := FromConfig(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, m.sinks, 3)
	require.NoError(t, m.Record(context.Background(), sampleResult()))
	require.NoError(t, m.Close())

	rs, err := ReadYAML(filepath.Join(dir, "r.yaml"))
	require.NoError(t, err)
	assert.Len(t, rs, 1)

	cfg.Set(config.ConfigResultSinks, []string{"carrier-pigeon"})
	_, err = FromConfig(context.Background(), cfg)
	assert.Error(t, err)
}
