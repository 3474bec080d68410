package harvest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "strips non-content elements",
			html: `<html><head><style>body{color:red}</style><script>var x = 1;</script></head>
<body><nav>Home | About</nav><h1>Shipping</h1><p>We ship   within
  3 days.</p><footer>(c) Shop</footer></body></html>`,
			want: "Shipping We ship within 3 days.",
		},
		{
			name: "nested scripts and noscript",
			html: `<body><div>Returns <script>track()</script>accepted<noscript>enable js</noscript></div></body>`,
			want: "Returns accepted",
		},
		{
			name: "adjacent blocks stay separate words",
			html: `<body><h1>Shipping</h1><p>We ship in 3 days.</p><ul><li>Returns</li><li>Refunds</li></ul></body>`,
			want: "Shipping We ship in 3 days. Returns Refunds",
		},
		{
			name: "list items",
			html: `<body><ul><li>A</li><li>B</li></ul></body>`,
			want: "A B",
		},
		{
			name: "table cells and line breaks",
			html: `<body><table><tr><td>Mon</td><td>9-5</td></tr></table>Call<br>us</body>`,
			want: "Mon 9-5 Call us",
		},
		{
			name: "inline markup does not split words",
			html: `<body><p>Free <b>ship</b>ping on orders over <a href="/x">$50</a>.</p></body>`,
			want: "Free shipping on orders over $50.",
		},
		{
			name: "fragment without body",
			html: `<p>Contact us at help@example.com</p>`,
			want: "Contact us at help@example.com",
		},
		{
			name: "empty document",
			html: ``,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b c", normalizeText("  a\n\tb   c \r\n"))
	assert.Equal(t, "", normalizeText(" \n "))
}
