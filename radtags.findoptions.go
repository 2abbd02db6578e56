package radtags

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var numberAttrPattern = regexp.MustCompile(`^\d{1,` + strconv.Itoa(MaxNumberAttrWidth) + `}$`)

// standardOptions parses the limit and offset attributes shared by the each tags.
// A query's zero Limit means "no limit", so an explicit limit="0" is reported
// through none instead: the tag selects no records at all.
func standardOptions(tag *Tag) (limit, offset int, none bool, err error) {
	limit, limitSet, err := numberAttr(tag, AttrLimit)
	if err != nil {
		return 0, 0, false, err
	}
	if offset, _, err = numberAttr(tag, AttrOffset); err != nil {
		return 0, 0, false, err
	}
	return limit, offset, limitSet && limit == 0, nil
}

func numberAttr(tag *Tag, name string) (int, bool, error) {
	raw, ok := tag.Attr(name)
	if !ok {
		return 0, false, nil
	}
	if !numberAttrPattern.MatchString(raw) {
		return 0, true, NewTagError(fmt.Sprintf(ErrFmtInvalidNumberAttr, name), tag.Name(), name, raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, NewTagError(fmt.Sprintf(ErrFmtInvalidNumberAttr, name), tag.Name(), name, raw)
	}
	return n, true, nil
}

// childrenFindOptions builds a page query from the limit, offset, by, order
// and status attributes. Virtual pages are never included. none reports an
// explicit limit="0".
func childrenFindOptions(tag *Tag) (q PageQuery, none bool, err error) {
	limit, offset, none, err := standardOptions(tag)
	if err != nil {
		return q, false, err
	}
	q.Limit = limit
	q.Offset = offset

	by := strings.TrimSpace(tag.AttrDefault(AttrBy, DefaultOrderBy))
	if !IsPageField(by) {
		return q, false, NewTagError(ErrMsgInvalidByAttr, tag.Name(), AttrBy, by)
	}
	q.OrderBy = by

	order := strings.TrimSpace(tag.AttrDefault(AttrOrder, DefaultOrder))
	switch {
	case strings.EqualFold(order, OrderAsc):
	case strings.EqualFold(order, OrderDesc):
		q.Descending = true
	default:
		return q, false, NewTagError(ErrMsgInvalidOrderAttr, tag.Name(), AttrOrder, order)
	}

	status := strings.ToLower(tag.AttrDefault(AttrStatus, DefaultStatus))
	if status == StatusAll {
		q.AllStatuses = true
		return q, none, nil
	}
	st, ok := LookupStatus(status)
	if !ok {
		return q, false, NewTagError(ErrMsgInvalidStatusAttr, tag.Name(), AttrStatus, status)
	}
	q.StatusID = st.ID
	return q, none, nil
}

// withBase scopes a query built from attributes to the records a pages tag selected.
func (q PageQuery) withBase(base PageQuery) PageQuery {
	q.CreatedByID = base.CreatedByID
	q.ParentID = base.ParentID
	return q
}
