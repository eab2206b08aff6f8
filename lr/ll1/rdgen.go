package ll1

import (
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr"
)

var rdTemplate = template.Must(template.New("rd").Parse(`int t;

bool match(int matched) {
    if (t != matched) return false;
    printf("Token matched: %d\n", matched);
    t = nextToken();
    return true;
}

{{range .Procs}}bool {{.Name}}();
{{end}}{{range .Procs}}
bool {{.Name}}() {
    bool valid = true;
    switch(t) {
{{- range .Cases}}
{{- range .Labels}}
        case {{.}}:
{{- end}}
{{- range .Calls}}
            valid = valid && {{.}};
{{- end}}
            break;
{{- end}}
        default:
            valid = false;
    }
    return valid;
}
{{end}}
int main() {
    t = nextToken();
    if ({{.Initial}}())
        printf("Accepted.\n");
    else
        printf("Syntax error.\n");
    exit(0);
}
`))

type rdCase struct {
	Labels []int
	Calls  []string
}

type rdProc struct {
	Name  string
	Cases []rdCase
}

// cIdent turns a non-terminal name into a C identifier.
func cIdent(name string) string {
	return strings.ReplaceAll(name, "'", "p")
}

// GenerateRecursiveDescent writes a recursive-descent recognizer for the grammar
// of ga in C. Every non-terminal becomes a function switching over the
// lookahead token t. Clients have to provide function nextToken().
func GenerateRecursiveDescent(ga *lr.GrammarAnalysis, w io.Writer) error {
	g := ga.Grammar()
	data := struct {
		Initial string
		Procs   []rdProc
	}{Initial: cIdent(g.InitialSymbol())}
	for _, n := range g.NonTerminals() {
		proc := rdProc{Name: cIdent(n)}
		for _, p := range g.Productions(n) {
			if p.IsEpsilon() {
				continue
			}
			c := rdCase{}
			for _, tok := range ga.FirstOfSequence(p.RHS()) {
				if tok != cfgkit.Epsilon {
					c.Labels = append(c.Labels, int(tok))
				}
			}
			for _, s := range p.RHS() {
				if s.IsTerminal() {
					c.Calls = append(c.Calls, "match("+strconv.Itoa(int(s.TokType()))+")")
				} else {
					c.Calls = append(c.Calls, cIdent(s.Name())+"()")
				}
			}
			proc.Cases = append(proc.Cases, c)
		}
		if ga.Nullable(n) {
			c := rdCase{}
			for _, tok := range ga.Follow(n) {
				c.Labels = append(c.Labels, int(tok))
			}
			proc.Cases = append(proc.Cases, c)
		}
		data.Procs = append(data.Procs, proc)
	}
	return rdTemplate.Execute(w, data)
}
