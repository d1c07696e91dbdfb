package models

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyLink_EscapesQuerySeparators(t *testing.T) {
	for _, project := range []string{"Chess & Co", "Chess 13", "50% + more?", "a=b#c"} {
		app := Application{Email: "alice@example.com", Position: PositionCM, ProjectName: project}

		link := app.ReplyLink()
		require.True(t, strings.HasPrefix(link, "mailto:alice@example.com?subject="), link)
		assert.NotContains(t, link, "+")

		query, err := url.ParseQuery(strings.SplitN(link, "?", 2)[1])
		require.NoError(t, err)
		assert.Equal(t, "Re: Candidature CM - "+project, query.Get("subject"))
		assert.Len(t, query, 1)
	}
}
