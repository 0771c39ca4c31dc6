package linkage

// testPhrase and testLinkage describe the parse of "this is a test":
//
//	    +---------RW---------+
//	    |        +--Ost--+   |
//	+-Wd+-Ss*b-+     +Ds**c+ |
//	|   |      |     |     | |
//	LW this   is     a   test RW
const testPhrase = "this is a test"

func testLinkage() *Linkage {
	return &Linkage{
		Index: 0,
		Words: []Word{
			{Text: "LEFT-WALL", ByteStart: 0, ByteEnd: 0, Disjunct: "Wd+ RW+"},
			{Text: "this.p", ByteStart: 0, ByteEnd: 4, Disjunct: "Wd- Ss*b+"},
			{Text: "is.v", ByteStart: 5, ByteEnd: 7, Disjunct: "Ss- O*t+"},
			{Text: "a", ByteStart: 8, ByteEnd: 9, Disjunct: "D*u+"},
			{Text: "test.n", ByteStart: 10, ByteEnd: 14, Disjunct: "Ds**c- Os-"},
			{Text: "RIGHT-WALL", ByteStart: 14, ByteEnd: 14, Disjunct: "RW-"},
		},
		Links: []Link{
			{Left: 0, Right: 1, Label: "Wd", LeftLabel: "Wd", RightLabel: "Wd"},
			{Left: 1, Right: 2, Label: "Ss*b", LeftLabel: "Ss*b", RightLabel: "Ss"},
			{Left: 2, Right: 4, Label: "Ost", LeftLabel: "O*t", RightLabel: "Os"},
			{Left: 3, Right: 4, Label: "Ds**c", LeftLabel: "D*u", RightLabel: "Ds**c"},
			{Left: 0, Right: 5, Label: "RW", LeftLabel: "RW", RightLabel: "RW"},
		},
	}
}
