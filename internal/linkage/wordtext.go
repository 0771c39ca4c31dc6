package linkage

import "fmt"

const (
	// LeftWall replaces the parser's LEFT-WALL word. The punctuation keeps
	// it from colliding with any real word.
	LeftWall = "###LEFT-WALL###"
	// RightWall replaces the parser's RIGHT-WALL word.
	RightWall = "###RIGHT-WALL###"

	// MaxWordLen bounds a word's byte span in the phrase.
	MaxWordLen = 240
)

// WordText returns the surface text of word w. The text is cut from phrase
// using the parser's byte offsets, which drops the subscripts and guess
// marks the parser appends to its own word strings. Words without a span
// fall back to the parser's string, with the wall words replaced by
// LeftWall and RightWall.
func WordText(lk *Linkage, w int, phrase string) (string, error) {
	if lk == nil || w < 0 || w >= len(lk.Words) {
		return "", fmt.Errorf("%w: word index %d out of range", ErrInvalidArgument, w)
	}
	word := lk.Words[w]

	if word.ByteStart != word.ByteEnd {
		sb, eb := word.ByteStart, word.ByteEnd
		if sb < 0 || eb < sb || eb > len(phrase) {
			return "", fmt.Errorf("%w: word %d span [%d,%d) outside phrase of %d bytes",
				ErrInvalidArgument, w, sb, eb, len(phrase))
		}
		if eb-sb > MaxWordLen {
			return "", fmt.Errorf("%w: word %d spans %d bytes", ErrWordTooLong, w, eb-sb)
		}
		return phrase[sb:eb], nil
	}

	if w == 0 && word.Text == "LEFT-WALL" {
		return LeftWall, nil
	}
	if w == len(lk.Words)-1 && word.Text == "RIGHT-WALL" {
		return RightWall, nil
	}
	return word.Text, nil
}

// wordTexts resolves the surface text of every word once.
func wordTexts(lk *Linkage, phrase string) ([]string, error) {
	out := make([]string, len(lk.Words))
	for w := range lk.Words {
		txt, err := WordText(lk, w, phrase)
		if err != nil {
			return nil, err
		}
		out[w] = txt
	}
	return out, nil
}
