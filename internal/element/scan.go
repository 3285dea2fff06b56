package element

import "ngbuild/internal/source"

// Scan indexes the @Identifier markers in a file and pairs each with the
// next declaration-like identifier as its element. The scanner never looks
// inside annotation bodies or arguments.
func Scan(f *source.File) []Annotation {
	if f == nil || len(f.Content) == 0 {
		return nil
	}

	var out []Annotation
	content := f.Content
	i := 0
	for i < len(content) {
		b := content[i]
		switch {
		case b == '/' && i+1 < len(content) && content[i+1] == '/':
			i = skipLine(content, i)
		case b == '@':
			ann, next := scanAnnotation(f, i)
			if ann != nil {
				out = append(out, *ann)
			}
			i = next
		default:
			i++
		}
	}
	return out
}

func skipLine(content []byte, i int) int {
	for i < len(content) && content[i] != '\n' {
		i++
	}
	return i
}

// scanAnnotation reads "@Identifier" starting at i and resolves the element
// it decorates: the next identifier that starts a line after the annotation.
func scanAnnotation(f *source.File, i int) (*Annotation, int) {
	content := f.Content
	start := i
	i++ // consume '@'
	for i < len(content) && isIdentByte(content[i]) {
		i++
	}
	if i == start+1 {
		// bare '@' with no identifier; not an annotation
		return nil, i
	}

	ann := Annotation{
		Source: string(content[start:i]),
		File:   f.ID,
		Offset: uint32(start),
		Length: uint32(i - start),
	}
	if el := scanDecoratedElement(f, i); el != nil {
		ann.Element = el
	}
	return &ann, i
}

// scanDecoratedElement finds the first identifier on a following line and
// treats it as the decorated declaration. Returns nil when the annotation is
// the last token in the file.
func scanDecoratedElement(f *source.File, i int) *Element {
	content := f.Content

	// Move past the rest of the annotation line (arguments etc. are opaque).
	i = skipLine(content, i)
	for i < len(content) {
		b := content[i]
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			i++
			continue
		}
		if b == '@' {
			// Stacked annotations decorate the same element; skip forward.
			i = skipLine(content, i)
			continue
		}
		break
	}
	if i >= len(content) || !isIdentStart(content[i]) {
		return nil
	}

	kind := KindUnknown
	keyword, rest := readWord(content, i)
	switch keyword {
	case "class", "component":
		kind = KindClass
	case "func", "function", "void":
		kind = KindFunction
	case "var", "let", "final":
		kind = KindField
	}
	if kind != KindUnknown {
		// The declaration name follows the keyword.
		i = rest
		for i < len(content) && (content[i] == ' ' || content[i] == '\t') {
			i++
		}
		if i >= len(content) || !isIdentStart(content[i]) {
			return nil
		}
	}

	nameStart := i
	for i < len(content) && isIdentByte(content[i]) {
		i++
	}
	return &Element{
		Name:   string(content[nameStart:i]),
		Kind:   kind,
		File:   f.ID,
		Offset: uint32(nameStart),
		Length: uint32(i - nameStart),
	}
}

func readWord(content []byte, i int) (string, int) {
	start := i
	for i < len(content) && isIdentByte(content[i]) {
		i++
	}
	return string(content[start:i]), i
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
