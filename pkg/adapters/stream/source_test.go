package stream_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/qso/pkg/adapters/stream"
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/ft8"
	"github.com/aretw0/qso/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSource_Contract(t *testing.T) {
	ports.RunMessageSourceContract(t, func(t *testing.T, msgs []string) ports.MessageSource {
		lines := make([]string, len(msgs))
		for i, m := range msgs {
			lines[i] = "000000  1  0.0 1000 ~ " + m
		}
		return stream.New(strings.NewReader(strings.Join(lines, "\n")))
	})
}

func TestStreamSource_SkipsMalformedLines(t *testing.T) {
	input := strings.Join(ft8.GoodQSO, "\n") + "\n\nno separator here\n   \n"
	src := stream.New(strings.NewReader(input))

	var got []string
	for {
		msg, err := src.Next(context.Background())
		if errors.Is(err, domain.ErrEndOfData) {
			break
		}
		require.NoError(t, err)
		got = append(got, msg)
	}
	assert.Equal(t, ft8.Messages(ft8.GoodQSO), got)
}

func TestStreamSource_Separator(t *testing.T) {
	src := stream.New(strings.NewReader("12:00|cq du3tw pk05\n"), stream.WithSeparator("|"))

	msg, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CQ DU3TW PK05", msg)
}

func TestStreamSource_SkipsOversizedLines(t *testing.T) {
	huge := "012545 ~ " + strings.Repeat("X", stream.MaxLineLength*2)
	input := strings.Join([]string{
		ft8.GoodQSO[0],
		huge,
		ft8.GoodQSO[1],
		huge,
	}, "\n")
	src := stream.New(strings.NewReader(input))

	var got []string
	for {
		msg, err := src.Next(context.Background())
		if errors.Is(err, domain.ErrEndOfData) {
			break
		}
		require.NoError(t, err)
		got = append(got, msg)
	}
	assert.Equal(t, ft8.Messages(ft8.GoodQSO[:2]), got)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestStreamSource_ReadError(t *testing.T) {
	src := stream.New(failingReader{})

	_, err := src.Next(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEndOfData)

	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, domain.ErrEndOfData)
}
