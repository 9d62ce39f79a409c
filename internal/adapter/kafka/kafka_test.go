package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testReport(s domain.Season) domain.SeasonReport {
	return domain.SeasonReport{
		Station:     "160800-99999",
		Season:      s,
		Period:      s.Period(),
		Reducer:     domain.ReducerMean,
		Years:       []int{2000, 2001},
		Ticks:       []string{"00", "01"},
		Mins:        domain.YearSeries{domain.Some(1.5), domain.None()},
		Maxs:        domain.YearSeries{domain.Some(12), domain.Some(13)},
		WindowLen:   5,
		WindowShape: "flat",
		GeneratedAt: time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
	}
}

func newTestWriter(fw *fakeWriter) *Writer {
	return &Writer{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestSerializeToMessage(t *testing.T) {
	msg, err := serializeToMessage(testReport(domain.Winter))
	require.NoError(t, err)

	assert.Equal(t, []byte("160800-99999-winter"), msg.Key)
	assert.Contains(t, string(msg.Value), `"season":"winter"`)
	assert.Contains(t, string(msg.Value), `"mins":[1.5,null]`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "season", msg.Headers[0].Key)
	assert.Equal(t, []byte("winter"), msg.Headers[0].Value)
	assert.Equal(t, "reducer", msg.Headers[1].Key)
	assert.Equal(t, []byte("mean"), msg.Headers[1].Value)
	assert.Equal(t, "generated_at", msg.Headers[2].Key)
	assert.Equal(t, []byte("2024-04-26T15:10:00Z"), msg.Headers[2].Value)

	var decoded domain.SeasonReport
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, domain.Winter, decoded.Season)
	assert.False(t, decoded.Mins[1].Valid)
}

func TestWriter_Emit(t *testing.T) {
	fw := &fakeWriter{}
	w := newTestWriter(fw)

	err := w.Emit(context.Background(), []domain.SeasonReport{testReport(domain.Spring), testReport(domain.Summer)})

	require.NoError(t, err)
	require.Len(t, fw.msgs, 2)
	assert.Equal(t, "160800-99999-spring", string(fw.msgs[0].Key))
	assert.Equal(t, "160800-99999-summer", string(fw.msgs[1].Key))
	assert.Equal(t, "kafka", w.Name())
}

func TestWriter_EmitEmpty(t *testing.T) {
	fw := &fakeWriter{err: errors.New("should not be called")}

	require.NoError(t, newTestWriter(fw).Emit(context.Background(), nil))
	assert.Empty(t, fw.msgs)
}

func TestWriter_EmitError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker unavailable")}

	err := newTestWriter(fw).Emit(context.Background(), []domain.SeasonReport{testReport(domain.Autumn)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestWriter_Close(t *testing.T) {
	fw := &fakeWriter{}
	require.NoError(t, newTestWriter(fw).Close())
	assert.True(t, fw.closed)
}
