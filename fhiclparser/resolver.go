package fhiclparser

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// The resolver runs inline during tree building, once per association after
// its value is determined. It owns the two lookup scopes: the table frame in
// progress D (one resolver per frame) and the immutable prolog mapping P.
// D wins over P; a
// prolog entry is cloned into D before any mutation (P is never touched).

type resolver struct {
	doc    *Table
	prolog *Table
	log    logrus.FieldLogger
}

// segment is one hname index step: `.name` into a table or `[i]` into a
// sequence.
type segment struct {
	key     string
	index   int
	isIndex bool
}

func (s segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return "." + s.key
}

// IsHname reports whether a name carries index segments.
func IsHname(name string) bool {
	return strings.ContainsAny(name, ".[")
}

// splitHname splits `tab[1].a` into the leading name and its segments.
func splitHname(name string) (head string, segs []segment, ok bool) {
	i := strings.IndexAny(name, ".[")
	if i == -1 {
		return name, nil, true
	}
	head = name[:i]
	rest := name[i:]
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			j := strings.IndexAny(rest, ".[")
			if j == -1 {
				j = len(rest)
			}
			if j == 0 {
				return "", nil, false
			}
			segs = append(segs, segment{key: rest[:j]})
			rest = rest[j:]
		case '[':
			j := strings.IndexByte(rest, ']')
			if j == -1 {
				return "", nil, false
			}
			idx, err := strconv.Atoi(rest[1:j])
			if err != nil {
				return "", nil, false
			}
			segs = append(segs, segment{index: idx, isIndex: true})
			rest = rest[j+1:]
		default:
			return "", nil, false
		}
	}
	return head, segs, true
}

// resolveValue replaces every reference in v, recursing through sequences
// and tables, so that no RefKind value survives.
func (r *resolver) resolveValue(v Value, pos Pos) (Value, error) {
	switch v.Kind {
	case RefKind:
		return r.resolveRef(v.Text, pos)
	case SeqKind:
		for i, e := range v.Seq {
			resolved, err := r.resolveValue(e, pos)
			if err != nil {
				return Value{}, err
			}
			v.Seq[i] = resolved
		}
		return v, nil
	case TableKind:
		for _, k := range v.Table.Keys() {
			e, _ := v.Table.Get(k)
			resolved, err := r.resolveValue(e, pos)
			if err != nil {
				return Value{}, err
			}
			v.Table.Set(k, resolved)
		}
		return v, nil
	default:
		return v, nil
	}
}

// resolveRef looks the target hname up in D, then P. The dereferenced value
// is cloned so that later overrides on the copy cannot reach back into the
// referent.
func (r *resolver) resolveRef(target string, pos Pos) (Value, error) {
	head, segs, ok := splitHname(target)
	if !ok {
		return Value{}, errorf(UnknownReference, pos, "malformed reference target: %q", target)
	}
	cur, found := r.doc.Get(head)
	if !found {
		cur, found = r.prolog.Get(head)
	}
	if !found {
		return Value{}, errorf(UnknownReference, pos, "reference target %q not found", head)
	}
	path := head
	for _, seg := range segs {
		if seg.isIndex {
			if cur.Kind != SeqKind || seg.index >= len(cur.Seq) {
				return Value{}, errorf(UnknownReference, pos, "reference target %q not found", path+seg.String())
			}
			cur = cur.Seq[seg.index]
		} else {
			if cur.Kind != TableKind {
				return Value{}, errorf(UnknownReference, pos, "reference target %q not found", path+seg.String())
			}
			next, exists := cur.Table.Get(seg.key)
			if !exists {
				return Value{}, errorf(UnknownReference, pos, "reference target %q not found", path+seg.String())
			}
			cur = next
		}
		path += seg.String()
	}
	return cur.Clone(), nil
}

// applyOverride applies an hname-keyed association as an in-place override.
// A leading name found in neither scope drops the override silently; this
// matches the reference behavior, so it is only surfaced at debug level.
func (r *resolver) applyOverride(key string, pos Pos, val Value) {
	head, segs, ok := splitHname(key)
	if !ok || len(segs) == 0 {
		r.log.WithField("key", key).Debug("dropping malformed hname override")
		return
	}
	hv, found := r.doc.Get(head)
	if !found {
		pv, inProlog := r.prolog.Get(head)
		if !inProlog {
			r.log.WithField("key", key).Debug("dropping hname override, leading name not in scope")
			return
		}
		// shadow the prolog entry: mutate a copy in D, never P itself
		hv = pv.Clone()
	}
	if !setPath(&hv, segs, val) {
		r.log.WithField("key", key).Debug("dropping hname override, path does not exist")
		return
	}
	r.doc.Set(head, hv)
}

// setPath walks container along segs and writes val at the final segment.
// Table segments replace or create; sequence segments replace in range and
// append at or past the end. Returns false when an intermediate segment
// cannot be walked.
func setPath(container *Value, segs []segment, val Value) bool {
	seg := segs[0]
	last := len(segs) == 1
	if seg.isIndex {
		if container.Kind != SeqKind {
			return false
		}
		if last {
			if seg.index < len(container.Seq) {
				container.Seq[seg.index] = val
			} else {
				container.Seq = append(container.Seq, val)
			}
			return true
		}
		if seg.index >= len(container.Seq) {
			return false
		}
		return setPath(&container.Seq[seg.index], segs[1:], val)
	}
	if container.Kind != TableKind {
		return false
	}
	if last {
		container.Table.Set(seg.key, val)
		return true
	}
	next, exists := container.Table.Get(seg.key)
	if !exists {
		return false
	}
	if !setPath(&next, segs[1:], val) {
		return false
	}
	container.Table.Set(seg.key, next)
	return true
}
