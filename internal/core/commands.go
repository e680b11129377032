package core

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownCommand is returned by Dispatch for an unrecognized kind.
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind enumerates the events a presentation layer can send.
type CommandKind string

const (
	CmdSetSearch   CommandKind = "set_search"
	CmdSetPageSize CommandKind = "set_page_size"
	CmdToggleSort  CommandKind = "toggle_sort"
	CmdSetSort     CommandKind = "set_sort"
	CmdGoToPage    CommandKind = "go_to_page"
	CmdNextPage    CommandKind = "next_page"
	CmdPrevPage    CommandKind = "prev_page"
	CmdReload      CommandKind = "reload"
	CmdCreate      CommandKind = "create"
	CmdEdit        CommandKind = "edit"
)

// Command is one presentation event with its raw payload. Only the fields
// relevant to Kind are read.
type Command struct {
	Kind      CommandKind  `json:"kind"`
	Search    string       `json:"search,omitempty"`
	PageSize  int          `json:"pageSize,omitempty"`
	SortField string       `json:"sortField,omitempty"`
	Direction string       `json:"direction,omitempty"` // set_sort only: "asc" or "desc"
	Page      int          `json:"page,omitempty"`
	ProductID int          `json:"productId,omitempty"`
	Form      *ProductForm `json:"form,omitempty"`
}

// Outcome is what Dispatch returns: the page to render and, for create and
// edit, the mutation result.
type Outcome struct {
	Page   Page    `json:"page"`
	Result *Result `json:"result,omitempty"`
}

// Dispatch routes cmd to the matching Service method. It is the message
// form of the method set, for presentation layers that prefer a single
// entry point.
func (s *Service) Dispatch(ctx context.Context, cmd Command) (Outcome, error) {
	switch cmd.Kind {
	case CmdSetSearch:
		return Outcome{Page: s.SetSearch(cmd.Search)}, nil

	case CmdSetPageSize:
		page, err := s.SetPageSize(cmd.PageSize)
		return Outcome{Page: page}, err

	case CmdToggleSort:
		field, err := ParseSortField(cmd.SortField)
		if err != nil {
			return Outcome{Page: s.View()}, err
		}
		return Outcome{Page: s.ToggleSort(field)}, nil

	case CmdSetSort:
		field, err := ParseSortField(cmd.SortField)
		if err != nil {
			return Outcome{Page: s.View()}, err
		}
		dir, err := ParseSortDirection(cmd.Direction)
		if err != nil {
			return Outcome{Page: s.View()}, err
		}
		return Outcome{Page: s.SetSort(field, dir)}, nil

	case CmdGoToPage:
		return Outcome{Page: s.GoToPage(cmd.Page)}, nil

	case CmdNextPage:
		return Outcome{Page: s.NextPage()}, nil

	case CmdPrevPage:
		return Outcome{Page: s.PrevPage()}, nil

	case CmdReload:
		page, err := s.Load(ctx)
		return Outcome{Page: page}, err

	case CmdCreate, CmdEdit:
		var form ProductForm
		if cmd.Form != nil {
			form = *cmd.Form
		}

		var (
			res Result
			err error
		)
		if cmd.Kind == CmdCreate {
			res, err = s.ApplyCreate(ctx, form)
		} else {
			res, err = s.ApplyEdit(ctx, cmd.ProductID, form)
		}
		if err != nil {
			return Outcome{Page: s.View()}, err
		}
		return Outcome{Page: res.Page, Result: &res}, nil

	default:
		return Outcome{Page: s.View()}, fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Kind)
	}
}
