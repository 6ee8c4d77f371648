package tsast

// Pos is a synthetic source position. Zero means "no comment".
type Pos uint32

// PosCursor hands out strictly increasing positions starting at 1.
type PosCursor struct {
	next Pos
}

// NewPosCursor returns a cursor whose first position is 1.
func NewPosCursor() *PosCursor {
	return &PosCursor{next: 1}
}

// Next allocates a fresh position.
func (c *PosCursor) Next() Pos {
	p := c.next
	c.next++
	return p
}

// Comments maps positions to block comment bodies (the text between
// the delimiters).
type Comments struct {
	byPos map[Pos]string
}

// NewComments returns an empty table.
func NewComments() *Comments {
	return &Comments{byPos: make(map[Pos]string)}
}

// Attach stores text under a fresh position from cursor and returns it.
// Positions are never reused, so comments never overwrite each other.
func (c *Comments) Attach(cursor *PosCursor, text string) Pos {
	pos := cursor.Next()
	c.byPos[pos] = text
	return pos
}

// Get returns the comment at pos.
func (c *Comments) Get(pos Pos) (string, bool) {
	if c == nil || pos == 0 {
		return "", false
	}
	text, ok := c.byPos[pos]
	return text, ok
}

// Len returns the number of attached comments.
func (c *Comments) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byPos)
}
