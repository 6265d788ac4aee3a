package features_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/gcn-portal/features"
	"github.com/stretchr/testify/require"
)

func TestEnabled(t *testing.T) {
	set := features.Parse("FOO, bar ,,Baz_Qux")

	require.True(t, set.Enabled("foo"))
	require.True(t, set.Enabled("FOO"))
	require.True(t, set.Enabled("Bar"))
	require.True(t, set.Enabled("baz_qux"))
	require.False(t, set.Enabled("fo"))
	require.False(t, set.Enabled(""))
	require.Equal(t, []string{"BAR", "BAZ_QUX", "FOO"}, set.Names())
}

func TestEmpty(t *testing.T) {
	require.Empty(t, features.Parse("").Names())
	require.False(t, features.Set{}.Enabled("foo"))
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	require.False(t, features.Enabled(ctx, "foo"))

	ctx = features.WithContext(ctx, features.Parse("FOO"))
	require.True(t, features.Enabled(ctx, "foo"))
	require.False(t, features.Enabled(ctx, "bar"))
}
