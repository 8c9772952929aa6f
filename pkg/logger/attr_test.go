package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploader/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("file", logger.Field("avatar"), logger.Filename("me.png"))
	require.Equal(t, "file", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "field", g[0].Key)
	assert.Equal(t, "filename", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestUploadAttrs(t *testing.T) {
	tests := []struct {
		name  string
		attr  slog.Attr
		key   string
		value any
	}{
		{name: "field", attr: logger.Field("avatar"), key: "field", value: "avatar"},
		{name: "filename", attr: logger.Filename("a.png"), key: "filename", value: "a.png"},
		{name: "path", attr: logger.Path("/tmp/a.png"), key: "path", value: "/tmp/a.png"},
		{name: "rule", attr: logger.Rule("size"), key: "rule", value: "size"},
		{name: "count", attr: logger.Count("placed", 3), key: "placed", value: int64(3)},
		{name: "component", attr: logger.Component("uploader"), key: "component", value: "uploader"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.value, tt.attr.Value.Any())
		})
	}
}
