package cmds

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-go-golems/pipemon/pkg/config"
	"github.com/go-go-golems/pipemon/pkg/transport"
	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "pipemon"}
	AddRootFlags(root)
	require.NoError(t, root.ParseFlags(args))
	return root
}

func TestGetRootOptions_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipemon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: nats://file:4222\nframe_interval: 100ms\n"), 0o644))

	root := newTestRoot(t, "--config", path, "--transport", "memory", "--poll-timeout", "250ms")
	opts, err := getRootOptions(root)
	require.NoError(t, err)

	require.Equal(t, path, opts.ConfigPath)
	require.Equal(t, config.TransportMemory, opts.Config.Transport)
	require.Equal(t, "nats://file:4222", opts.Config.Endpoint)
	require.Equal(t, 250*time.Millisecond, opts.Config.PollTimeout)
	require.Equal(t, 100*time.Millisecond, opts.Config.FrameInterval)
}

func TestGetRootOptions_RejectsBadOverride(t *testing.T) {
	root := newTestRoot(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--transport", "carrier-pigeon")
	_, err := getRootOptions(root)
	require.Error(t, err)
}

func TestNewLink_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.Transport = config.TransportMemory

	l, err := newLink(cfg)
	require.NoError(t, err)
	_, ok := l.connector.(*transport.Watermill)
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	src, err := l.connector.Connect(ctx, cfg.Topics.All())
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	pub, err := l.newPublisher()
	require.NoError(t, err)
	enc := wire.NewEncoder(cfg.Topics, cfg.Delimiters)
	require.NoError(t, pub.Publish(ctx, enc.SessionEnd()))

	f, ok, err := src.Receive(ctx, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, cfg.Topics.Finish, f.Topic)
}

func TestNewLink_NATS(t *testing.T) {
	cfg := config.Default()
	l, err := newLink(cfg)
	require.NoError(t, err)
	n, ok := l.connector.(*transport.NATS)
	require.True(t, ok)
	require.Equal(t, transport.DefaultNATSURL, n.URL)
}
