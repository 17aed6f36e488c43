package docxtpl

import "testing"

func TestRepairTemplateTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "intact tag untouched",
			in:   `<w:t>{{Name}}</w:t>`,
			want: `<w:t>{{Name}}</w:t>`,
		},
		{
			name: "split between braces",
			in:   `<w:t>{</w:t></w:r><w:r><w:t>{Name}}</w:t>`,
			want: `<w:t>{{Name}}</w:t>`,
		},
		{
			name: "split mid name with formatting run",
			in:   `<w:t>{{Na</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>me}}</w:t>`,
			want: `<w:t>{{Name}}</w:t>`,
		},
		{
			name: "split between closing braces",
			in:   `<w:t>{{X}</w:t></w:r><w:r><w:t>}</w:t>`,
			want: `<w:t>{{X}}</w:t>`,
		},
		{
			name: "single brace in ordinary text",
			in:   `<w:t>a { b } c</w:t>`,
			want: `<w:t>a { b } c</w:t>`,
		},
		{
			name: "brace at paragraph end stays literal",
			in:   `<w:t>tail {</w:t></w:r></w:p><w:p><w:r><w:t>{not joined</w:t>`,
			want: `<w:t>tail {</w:t></w:r></w:p><w:p><w:r><w:t>{not joined</w:t>`,
		},
		{
			name: "two tags in one run",
			in:   `<w:t>{{A}} and {{B}}</w:t>`,
			want: `<w:t>{{A}} and {{B}}</w:t>`,
		},
		{
			name: "marker with expression survives",
			in:   `<w:t>{{#if A &gt; 1}}</w:t>`,
			want: `<w:t>{{#if A &gt; 1}}</w:t>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairTemplateTags(tt.in); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestSplitBody(t *testing.T) {
	content := `<?xml?><w:document><w:body><w:p><w:r><w:t>x</w:t></w:r></w:p><w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
	prefix, inner, suffix, err := splitBody(content)
	if err != nil {
		t.Fatal(err)
	}
	if prefix != `<?xml?><w:document><w:body>` {
		t.Errorf("prefix = %q", prefix)
	}
	if inner != `<w:p><w:r><w:t>x</w:t></w:r></w:p>` {
		t.Errorf("inner = %q", inner)
	}
	if suffix != `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>` {
		t.Errorf("suffix = %q", suffix)
	}
}

func TestSplitBodyMissing(t *testing.T) {
	if _, _, _, err := splitBody("<w:document/>"); err == nil {
		t.Error("missing body should fail")
	}
}
