package accessor

// The fixture is a three level tree: annotatedClass expands r1 explicitly and
// r3 through its type, both reach subAnnotated, which reaches subSub through
// its type.

type annotatedClass struct {
	r3 *subPlaceholder `meta:"position=5"`
	f2 string          `meta:"position=2"`
	f9 string          `meta:"position=4"`
	r1 *subAnnotated   `meta:"position=3,expand"`
	f1 string          `meta:"position=1"`
}

func (c *annotatedClass) GetR3() *subPlaceholder { return c.r3 }
func (c *annotatedClass) SetR3(v *subPlaceholder) { c.r3 = v }
func (c *annotatedClass) GetF2() string { return c.f2 }
func (c *annotatedClass) SetF2(v string) { c.f2 = v }
func (c *annotatedClass) GetF9() string { return c.f9 }
func (c *annotatedClass) SetF9(v string) { c.f9 = v }
func (c *annotatedClass) GetR1() *subAnnotated { return c.r1 }
func (c *annotatedClass) SetR1(v *subAnnotated) { c.r1 = v }
func (c *annotatedClass) GetF1() string { return c.f1 }
func (c *annotatedClass) SetF1(v string) { c.f1 = v }

type subAnnotated struct {
	f7 string  `meta:"position=3"`
	f8 string  `meta:"position=4"`
	r2 *subSub `meta:"position=2"`
	f3 string  `meta:"position=1"`
}

func (c *subAnnotated) GetR2() *subSub { return c.r2 }
func (c *subAnnotated) SetR2(v *subSub) { c.r2 = v }
func (c *subAnnotated) GetF3() string { return c.f3 }
func (c *subAnnotated) SetF3(v string) { c.f3 = v }

type subPlaceholder struct {
	_   struct{}      `meta:"expand"`
	f10 string        `meta:"position=0"`
	r4  *subAnnotated `meta:"position=1,expand"`
	f11 string        `meta:"position=2"`
}

type subSub struct {
	_  struct{} `meta:"expand"`
	f5 string   `meta:"position=3"`
	f6 string   `meta:"position=4"`
	f4 string   `meta:"position=1"`
}

var fixtureNodes = []string{
	"f1", "f2",
	"r1", "r1.f3", "r1.r2", "r1.r2.f4", "r1.r2.f5", "r1.r2.f6", "r1.f7", "r1.f8",
	"f9",
	"r3", "r3.f10", "r3.r4", "r3.r4.f3", "r3.r4.r2", "r3.r4.r2.f4", "r3.r4.r2.f5", "r3.r4.r2.f6",
	"r3.r4.f7", "r3.r4.f8", "r3.f11",
}

var fixtureLeaves = []string{
	"f1", "f2",
	"r1.f3", "r1.r2.f4", "r1.r2.f5", "r1.r2.f6", "r1.f7", "r1.f8",
	"f9",
	"r3.f10", "r3.r4.f3", "r3.r4.r2.f4", "r3.r4.r2.f5", "r3.r4.r2.f6", "r3.r4.f7", "r3.r4.f8", "r3.f11",
}

func names(accs []*Accessor) []string {
	out := make([]string, len(accs))
	for i, a := range accs {
		out[i] = a.Name()
	}
	return out
}

func leaves(accs []*Accessor) []*Accessor {
	var out []*Accessor
	for _, a := range accs {
		if a.IsLeaf() {
			out = append(out, a)
		}
	}
	return out
}
