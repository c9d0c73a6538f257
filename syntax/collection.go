package syntax

// Member is the constraint for nodes which may be grouped into a Collection.
// Member types embed a Link.
type Member[T any] interface {
	Node
	GroupLink() *Link[T]
}

// Group is the read side of a collection, as seen from one of its members.
type Group[T any] interface {
	Len() int
	All() []T
	First() (T, bool)
	Last() (T, bool)
	Owner() Node // the node owning the collection
	//
	next(l *Link[T]) (T, bool)
	prev(l *Link[T]) (T, bool)
	insert(anchor *Link[T], unit T, after bool) error
	remove(l *Link[T]) error
}

// Link is the group membership of a node. It is embedded into member types and
// must not be copied while the node is grouped.
//
// Neighbour and group references of a link are non-owning: a collection owns
// the positional order of its members.
type Link[T any] struct {
	group     Group[T]
	slot      int32
	gen       uint32
	destroyed bool
}

// GroupLink makes embedding types satisfy Member.
func (l *Link[T]) GroupLink() *Link[T] {
	return l
}

// Group returns the collection l is a member of. For ungrouped or destroyed
// nodes, ok is false.
func (l *Link[T]) Group() (g Group[T], ok bool) {
	if l.group == nil || l.destroyed {
		return nil, false
	}
	return l.group, true
}

// IsFirst is true if l is the first member of its collection. Ungrouped nodes
// are always first.
func (l *Link[T]) IsFirst() bool {
	if l.group == nil {
		return true
	}
	_, ok := l.group.prev(l)
	return !ok
}

// IsLast is true if l is the last member of its collection. Ungrouped nodes
// are always last.
func (l *Link[T]) IsLast() bool {
	if l.group == nil {
		return true
	}
	_, ok := l.group.next(l)
	return !ok
}

// Next returns the following member, if any.
func (l *Link[T]) Next() (T, bool) {
	if l.group == nil {
		var zero T
		return zero, false
	}
	return l.group.next(l)
}

// Previous returns the preceding member, if any.
func (l *Link[T]) Previous() (T, bool) {
	if l.group == nil {
		var zero T
		return zero, false
	}
	return l.group.prev(l)
}

// Append inserts unit immediately after l. l has to be grouped and not destroyed.
// If unit is grouped elsewhere, it is moved. Appending l to itself is a no-op.
func (l *Link[T]) Append(unit T) error {
	return l.insert(unit, true)
}

// Prepend inserts unit immediately before l. l has to be grouped and not destroyed.
// If unit is grouped elsewhere, it is moved. Prepending l to itself is a no-op.
func (l *Link[T]) Prepend(unit T) error {
	return l.insert(unit, false)
}

func (l *Link[T]) insert(unit T, after bool) error {
	if l.destroyed {
		return ErrDestroyed
	}
	if m, ok := any(unit).(Member[T]); ok && m.GroupLink() == l {
		return nil
	}
	if l.group == nil {
		return ErrUngrouped
	}
	return l.group.insert(l, unit, after)
}

// Unlink removes l from its collection, without destroying it.
// Unlinking an ungrouped node is a no-op.
func (l *Link[T]) Unlink() {
	if l.group != nil {
		_ = l.group.remove(l)
	}
}

// Destroy removes l from its collection and marks it destroyed. A destroyed
// node refuses all further linkage operations. Destroying twice is a no-op.
func (l *Link[T]) Destroy() {
	if l.destroyed {
		return
	}
	l.Unlink()
	l.destroyed = true
}

// Destroyed is true after Destroy has been called.
func (l *Link[T]) Destroyed() bool {
	return l.destroyed
}

// --- Collection ------------------------------------------------------------

type slot[T any] struct {
	member     T
	prev, next int32
	gen        uint32
	live       bool
}

const none int32 = -1

// Collection is an ordered, mutable sequence of syntax nodes, owned by a parent
// node of type P.
//
// If a collection has a broadcaster set, members are broadcast (including their
// children) on insertion, unless they have been broadcast before.
type Collection[P Node, T Member[T]] struct {
	parent     P
	slots      []slot[T]
	free       []int32
	head, tail int32
	size       int
	bc         Broadcaster
}

// NewCollection creates an empty collection owned by parent. bc may be nil.
func NewCollection[P Node, T Member[T]](parent P, bc Broadcaster) *Collection[P, T] {
	return &Collection[P, T]{
		parent: parent,
		head:   none,
		tail:   none,
		bc:     bc,
	}
}

// Parent returns the node owning the collection.
func (c *Collection[P, T]) Parent() P {
	return c.parent
}

// Owner is the parent as a plain node.
func (c *Collection[P, T]) Owner() Node {
	return c.parent
}

// SetBroadcaster sets the broadcaster for newly inserted members.
func (c *Collection[P, T]) SetBroadcaster(bc Broadcaster) {
	c.bc = bc
}

// Broadcaster returns the broadcaster for newly inserted members. May be nil.
func (c *Collection[P, T]) Broadcaster() Broadcaster {
	return c.bc
}

// Len returns the number of members.
func (c *Collection[P, T]) Len() int {
	return c.size
}

// IsEmpty is true for collections without members.
func (c *Collection[P, T]) IsEmpty() bool {
	return c.size == 0
}

// First returns the first member, if any.
func (c *Collection[P, T]) First() (T, bool) {
	if c.head == none {
		var zero T
		return zero, false
	}
	return c.slots[c.head].member, true
}

// Last returns the last member, if any.
func (c *Collection[P, T]) Last() (T, bool) {
	if c.tail == none {
		var zero T
		return zero, false
	}
	return c.slots[c.tail].member, true
}

// All returns a snapshot of the members, in order.
func (c *Collection[P, T]) All() []T {
	all := make([]T, 0, c.size)
	for i := c.head; i != none; i = c.slots[i].next {
		all = append(all, c.slots[i].member)
	}
	return all
}

// Each calls f for every member, in order. Iteration works on a snapshot, so f is
// free to restructure the collection. Members removed while iterating are skipped.
// If f returns an error, iteration stops and the error is returned.
func (c *Collection[P, T]) Each(f func(T) error) error {
	for _, m := range c.All() {
		if !c.Contains(m) {
			continue
		}
		if err := f(m); err != nil {
			return err
		}
	}
	return nil
}

// Contains is true if unit is a member of c.
func (c *Collection[P, T]) Contains(unit T) bool {
	return c.valid(unit.GroupLink())
}

// Append adds unit at the end of the collection. A unit grouped elsewhere is moved.
func (c *Collection[P, T]) Append(unit T) error {
	if err := c.prepare(unit); err != nil {
		return err
	}
	if err := c.attach(unit, c.tail, none); err != nil {
		return err
	}
	return c.broadcast(unit)
}

// Prepend adds unit at the start of the collection. A unit grouped elsewhere is moved.
func (c *Collection[P, T]) Prepend(unit T) error {
	if err := c.prepare(unit); err != nil {
		return err
	}
	if err := c.attach(unit, none, c.head); err != nil {
		return err
	}
	return c.broadcast(unit)
}

// AppendAll appends all units. Units are linked first and broadcast afterwards,
// in order.
func (c *Collection[P, T]) AppendAll(units []T) error {
	for _, u := range units {
		if err := c.prepare(u); err != nil {
			return err
		}
		if err := c.attach(u, c.tail, none); err != nil {
			return err
		}
	}
	for _, u := range units {
		if err := c.broadcast(u); err != nil {
			return err
		}
	}
	return nil
}

// InsertBefore inserts unit immediately before existing member anchor.
func (c *Collection[P, T]) InsertBefore(anchor, unit T) error {
	return c.insert(anchor.GroupLink(), unit, false)
}

// InsertAfter inserts unit immediately after existing member anchor.
func (c *Collection[P, T]) InsertAfter(anchor, unit T) error {
	return c.insert(anchor.GroupLink(), unit, true)
}

// MoveBefore places member unit immediately before member target, keeping unit's
// identity. If unit already is in place, nothing happens. Moving does not broadcast.
func (c *Collection[P, T]) MoveBefore(unit, target T) error {
	return c.move(unit, target, false)
}

// MoveAfter places member unit immediately after member target, keeping unit's
// identity. If unit already is in place, nothing happens. Moving does not broadcast.
func (c *Collection[P, T]) MoveAfter(unit, target T) error {
	return c.move(unit, target, true)
}

// DetachAll removes all members from the collection and returns them, in order.
// The members are not destroyed.
func (c *Collection[P, T]) DetachAll() []T {
	all := c.All()
	for _, m := range all {
		_ = c.remove(m.GroupLink())
	}
	return all
}

func (c *Collection[P, T]) move(unit, target T, after bool) error {
	ul, tl := unit.GroupLink(), target.GroupLink()
	if ul.destroyed || tl.destroyed {
		return ErrDestroyed
	}
	if !c.valid(ul) || !c.valid(tl) {
		return ErrNotMember
	}
	if ul == tl {
		return nil
	}
	if after && c.slots[tl.slot].next == ul.slot || !after && c.slots[tl.slot].prev == ul.slot {
		tracer().Debugf("move of %v is a no-op", unit.Kind())
		return nil
	}
	c.unlinkSlot(ul)
	var prev, next int32
	if after {
		prev, next = tl.slot, c.slots[tl.slot].next
	} else {
		prev, next = c.slots[tl.slot].prev, tl.slot
	}
	return c.attach(unit, prev, next)
}

// insert is called by members of the collection.
func (c *Collection[P, T]) insert(anchor *Link[T], unit T, after bool) error {
	if anchor.destroyed {
		return ErrDestroyed
	}
	if !c.valid(anchor) {
		return ErrNotMember
	}
	if unit.GroupLink() == anchor {
		return nil
	}
	if err := c.prepare(unit); err != nil {
		return err
	}
	var prev, next int32
	if after {
		prev, next = anchor.slot, c.slots[anchor.slot].next
	} else {
		prev, next = c.slots[anchor.slot].prev, anchor.slot
	}
	if err := c.attach(unit, prev, next); err != nil {
		return err
	}
	return c.broadcast(unit)
}

// prepare checks that unit may be linked and detaches it from its current
// collection. It has to be called before neighbour slots are determined.
func (c *Collection[P, T]) prepare(unit T) error {
	if unit.GroupLink().destroyed {
		return ErrDestroyed
	}
	return c.detachUnit(unit)
}

// attach links an ungrouped unit between slots prev and next, which have to be
// neighbours (or none at either end).
func (c *Collection[P, T]) attach(unit T, prev, next int32) error {
	l := unit.GroupLink()
	if l.group != nil {
		return ErrNotMember
	}
	i := c.alloc(unit)
	s := &c.slots[i]
	s.prev, s.next = prev, next
	if prev == none {
		c.head = i
	} else {
		c.slots[prev].next = i
	}
	if next == none {
		c.tail = i
	} else {
		c.slots[next].prev = i
	}
	l.group = c
	l.slot = i
	l.gen = s.gen
	c.size++
	return nil
}

// detachUnit removes unit from whatever collection it is grouped in.
func (c *Collection[P, T]) detachUnit(unit T) error {
	l := unit.GroupLink()
	if l.group == nil {
		return nil
	}
	tracer().Debugf("moving %v unit #%d to another position", unit.Kind(), unit.ID())
	return l.group.remove(l)
}

func (c *Collection[P, T]) alloc(unit T) int32 {
	var i int32
	if n := len(c.free); n > 0 {
		i = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		c.slots = append(c.slots, slot[T]{})
		i = int32(len(c.slots) - 1)
	}
	c.slots[i].member = unit
	c.slots[i].live = true
	return i
}

func (c *Collection[P, T]) remove(l *Link[T]) error {
	if !c.valid(l) {
		return ErrNotMember
	}
	c.unlinkSlot(l)
	return nil
}

// unlinkSlot frees the slot of l. The slot's generation is bumped, invalidating
// any stale handle.
func (c *Collection[P, T]) unlinkSlot(l *Link[T]) {
	i := l.slot
	s := &c.slots[i]
	if s.prev == none {
		c.head = s.next
	} else {
		c.slots[s.prev].next = s.next
	}
	if s.next == none {
		c.tail = s.prev
	} else {
		c.slots[s.next].prev = s.prev
	}
	var zero T
	s.member = zero
	s.prev, s.next = none, none
	s.live = false
	s.gen++
	c.free = append(c.free, i)
	c.size--
	l.group = nil
	l.slot = none
}

func (c *Collection[P, T]) valid(l *Link[T]) bool {
	if l == nil || l.group == nil || l.slot < 0 || int(l.slot) >= len(c.slots) {
		return false
	}
	if g, ok := l.group.(*Collection[P, T]); !ok || g != c {
		return false
	}
	s := c.slots[l.slot]
	return s.live && s.gen == l.gen
}

func (c *Collection[P, T]) next(l *Link[T]) (T, bool) {
	var zero T
	if !c.valid(l) {
		return zero, false
	}
	n := c.slots[l.slot].next
	if n == none {
		return zero, false
	}
	return c.slots[n].member, true
}

func (c *Collection[P, T]) prev(l *Link[T]) (T, bool) {
	var zero T
	if !c.valid(l) {
		return zero, false
	}
	p := c.slots[l.slot].prev
	if p == none {
		return zero, false
	}
	return c.slots[p].member, true
}

func (c *Collection[P, T]) broadcast(unit T) error {
	if c.bc == nil || unit.Status() != Unbroadcast {
		return nil
	}
	return Propagate(c.bc, unit)
}
