package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromRequestDefaults(t *testing.T) {
	p := FromRequest("", "")
	require.Equal(t, 1, p.Page)
	require.Equal(t, DefaultLimit, p.Limit)
	require.Equal(t, 0, p.Offset())
}

func TestFromRequestClamping(t *testing.T) {
	p := FromRequest("-3", "5000")
	require.Equal(t, 1, p.Page)
	require.Equal(t, MaxLimit, p.Limit)

	p = FromRequest("4", "25")
	require.Equal(t, 75, p.Offset())
}

func TestPages(t *testing.T) {
	p := Params{Page: 1, Limit: 10}
	require.Equal(t, 1, p.Pages(0))
	require.Equal(t, 1, p.Pages(10))
	require.Equal(t, 2, p.Pages(11))
	require.Equal(t, 5, p.Pages(41))
}
