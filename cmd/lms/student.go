package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/session"
)

func studentCommands(rt *runtime) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "courses",
			Usage: "list courses (--available for ones you can join, --mine for enrolled)",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "available"},
				&cli.BoolFlag{Name: "mine"},
			},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				if !c.Bool("available") && !c.Bool("mine") {
					courses, err := s.Courses(c.Context)
					if err != nil {
						return err
					}
					w := table("CODE", "NAME", "TEACHER", "PROGRESS")
					for _, co := range courses {
						fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\n", co.CourseCode, co.CourseName, co.Teacher, co.Progress)
					}
					return w.Flush()
				}

				if c.Bool("mine") {
					list, err := s.MyCourses(c.Context)
					if err != nil {
						return err
					}
					w := table("CODE", "NAME", "TEACHER", "ENROLLED")
					for _, e := range list {
						name, teacher := "", ""
						if e.Course != nil {
							name, teacher = e.Course.CourseName, e.Course.Teacher
						}
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CourseCode, name, teacher, e.EnrollmentDate)
					}
					return w.Flush()
				}
				list, err := s.AvailableCourses(c.Context)
				if err != nil {
					return err
				}
				w := table("CODE", "NAME", "TEACHER")
				for _, co := range list {
					fmt.Fprintf(w, "%s\t%s\t%s\n", co.CourseCode, co.CourseName, co.Teacher)
				}
				return w.Flush()
			},
		},
		{
			Name:      "enroll",
			Usage:     "enroll in a course",
			ArgsUsage: "COURSE_CODE",
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				e, err := s.Enroll(c.Context, c.Args().First())
				if err != nil {
					return err
				}
				fmt.Printf("enrolled in %s on %s\n", e.CourseCode, e.EnrollmentDate)
				return nil
			},
		},
		{
			Name:  "assignments",
			Usage: "list your assignments with submission status",
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				list, err := s.MyAssignments(c.Context)
				if err != nil {
					return err
				}
				w := table("ID", "COURSE", "TITLE", "DUE", "POINTS", "STATUS")
				for _, a := range list {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", a.ID, a.CourseCode, a.Title, a.DueDate, a.MaxPoints, a.Status)
				}
				return w.Flush()
			},
		},
		{
			Name:      "submit",
			Usage:     "submit a file for an assignment",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{&cli.Int64Flag{Name: "assignment", Aliases: []string{"a"}, Required: true}},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				sub, err := s.Submit(c.Context, c.Int64("assignment"), c.Args().First())
				if err != nil {
					return err
				}
				fmt.Printf("submitted %s at %s\n", sub.FilePath, sub.SubmissionDate)
				return nil
			},
		},
		{
			Name:  "unsubmit",
			Usage: "withdraw a submission",
			Flags: []cli.Flag{&cli.Int64Flag{Name: "assignment", Aliases: []string{"a"}, Required: true}},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				if err := s.Unsubmit(c.Context, c.Int64("assignment")); err != nil {
					return err
				}
				fmt.Println("submission withdrawn")
				return nil
			},
		},
		{
			Name:  "status",
			Usage: "show submission status for an assignment",
			Flags: []cli.Flag{&cli.Int64Flag{Name: "assignment", Aliases: []string{"a"}, Required: true}},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				st, err := s.Status(c.Context, c.Int64("assignment"))
				if err != nil {
					return err
				}
				fmt.Println(st)
				return nil
			},
		},
		{
			Name:  "grades",
			Usage: "show your published grades",
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				list, err := s.MyGrades(c.Context)
				if err != nil {
					return err
				}
				w := table("COURSE", "ASSIGNMENT", "GRADE", "FEEDBACK", "PUBLISHED")
				for _, g := range list {
					fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\n", g.CourseCode, g.AssignmentTitle, g.Grade, g.MaxPoints, g.Feedback, g.PublishDate)
				}
				return w.Flush()
			},
		},
		{
			Name:  "announcements",
			Usage: "show announcements for you (or --course for one course)",
			Flags: []cli.Flag{&cli.StringFlag{Name: "course"}},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				if code := c.String("course"); code != "" {
					list, err := s.CourseAnnouncements(c.Context, code)
					if err != nil {
						return err
					}
					return printAnnouncements(list)
				}
				list, err := s.MyAnnouncements(c.Context)
				if err != nil {
					return err
				}
				return printAnnouncements(list)
			},
		},
		{
			Name:  "check",
			Usage: "run the grade and announcement checks once",
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				alerts, err := s.CheckNow(c.Context)
				if err != nil {
					return err
				}
				if len(alerts) == 0 {
					fmt.Println("nothing new")
				}
				for _, a := range alerts {
					printAlert(a)
				}
				return nil
			},
		},
		{
			Name:  "watch",
			Usage: "stay logged in and print notifications until interrupted",
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				if !s.IsStudent() {
					return session.ErrForbidden.WithField("role", s.User.Role)
				}

				ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
				defer stop()

				rt.manager.Watch(s)
				fmt.Printf("watching for %s, press Ctrl+C to stop\n", s.User.FullName)
				<-ctx.Done()

				rt.manager.Stop(s)
				return nil
			},
		},
		{
			Name:  "calendar",
			Usage: "export due dates of your courses as an .ics file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory", Value: "."},
			},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				buf, name, err := s.MyCalendar(c.Context)
				if err != nil {
					return err
				}
				path := filepath.Join(c.String("out"), name)
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return err
				}
				fmt.Printf("calendar written to %s\n", path)
				return nil
			},
		},
	}
}

func printAnnouncements(list []dto.AnnouncementResponse) error {
	w := table("DATE", "COURSE", "TITLE", "CONTENT")
	for _, a := range list {
		course := "all"
		if a.CourseCode != nil {
			course = *a.CourseCode
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Date, course, a.Title, a.Content)
	}
	return w.Flush()
}

func table(headers ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)
	return w
}
