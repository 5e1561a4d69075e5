package commands

import (
	"fmt"
	"io"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
)

// Journal prints the journal entries. When an address is provided only the
// entries submitted by that address are printed. The hash chain is
// validated while the entries are read.
func Journal(w io.Writer, address string, serializer database.Serializer) error {
	var filter database.Address
	if address != "" {
		var err error
		if filter, err = database.ToAddress(address); err != nil {
			return err
		}
	}

	jnl, err := database.New(serializer, nil)
	if err != nil {
		return err
	}

	iter := jnl.ForEach()
	for ed, err := iter.Next(); !iter.Done(); ed, err = iter.Next() {
		if err != nil {
			return err
		}

		if filter != "" && ed.Entry.Caller != filter {
			continue
		}

		fmt.Fprintf(w, "%6d  %s  %-22s  %s  %s\n", ed.Entry.Number, ed.Hash, ed.Entry.Op, ed.Entry.Caller, detail(ed.Entry))
	}

	return nil
}

// detail formats the operation specific fields of an entry.
func detail(entry database.Entry) string {
	switch entry.Op {
	case database.OpRegisterUser:
		return fmt.Sprintf("username[%s]", entry.Username)
	case database.OpCompleteLesson:
		return fmt.Sprintf("lesson[%s]", entry.LessonID)
	case database.OpCompleteStep:
		return fmt.Sprintf("course[%s] step[%s]", entry.CourseID, entry.StepID)
	case database.OpSetTotalSteps:
		return fmt.Sprintf("course[%s] total[%d]", entry.CourseID, entry.TotalSteps)
	}

	return ""
}
