package earley

import (
	"bytes"
	"fmt"
)

func (ch chart) dump(pos int) {
	tracer().Debugf("--- State %04d ------------------------------------", pos)
	for n, e := range ch[pos].entries {
		tracer().Debugf("[%2d] %s %s", n, e.item, linksString(e.links))
	}
}

func linksString(links []link) string {
	var b bytes.Buffer
	for i, l := range links {
		if i > 0 {
			b.WriteString(" ")
		}
		if l.complete == noRef {
			fmt.Fprintf(&b, "<%v>", l.prev)
		} else {
			fmt.Fprintf(&b, "<%v,%v>", l.prev, l.complete)
		}
	}
	return b.String()
}

func (r ref) String() string {
	return fmt.Sprintf("%d:%d", r.pos, r.idx)
}
