package student

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/screen"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/utils/filewatch"
	"github.com/youta-t/flarc"
)

func NewSearch() (flarc.Command, error) {
	return flarc.NewCommand(
		"Search students as you type.",
		struct{}{},
		flarc.Args{},
		common.NewSessionTask(SearchTask()),
		flarc.WithDescription(`
Search students as you type.

Each line from stdin is a query. Queries are sent as soon as they are read,
and only the result of the latest query is shown.
Results of former queries arriving late are discarded.

It stops at the end of stdin, or when the session is changed (by login or logout).
`),
	)
}

func SearchTask() common.SessionTask[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		store session.Store,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		if fs, ok := store.(*session.FileStore); ok {
			wctx, cancel, err := filewatch.UntilModifyContext(ctx, fs.Path())
			if err != nil {
				logger.Printf("session file is not watched: %s", err)
			} else {
				defer cancel()
				ctx = wctx
			}
		}

		return Search(ctx, logger, client, cl.Stdin(), cl.Stdout())
	}
}

// Search reads queries line by line from in, and prints the latest result to out.
func Search(ctx context.Context, logger *log.Logger, client rest.SmsClient, in io.Reader, out io.Writer) error {
	list := screen.NewList(func(ctx context.Context, q string) ([]students.Summary, error) {
		page, err := client.ListStudents(ctx, students.Filter{Search: q})
		if err != nil {
			return nil, err
		}
		return page.Results, nil
	}, logger)

	// query of the latest Load. Loading views are made only in the loop below.
	var pending string
	list.OnChange(func(v screen.View[students.Summary]) {
		if v.Loading {
			fmt.Fprintf(out, "searching %q...\n", pending)
			return
		}
		if v.Err != nil {
			return
		}
		if err := Table.Write(out, v.Items); err != nil {
			logger.Printf("failed to print: %s", err)
		}
		io.WriteString(out, "\n")
	})

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	wg := new(sync.WaitGroup)
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			if cause := context.Cause(ctx); !errors.Is(cause, context.Canceled) {
				logger.Printf("stop searching: %s", cause)
			}
			return nil
		case q, ok := <-lines:
			if !ok {
				return nil
			}
			pending = q
			done := list.Go(ctx, q)
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-done
			}()
		}
	}
}
