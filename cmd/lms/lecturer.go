package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"campus-lms/backend/internal/dto"
	apperr "campus-lms/backend/pkg/errors"
)

var errPublishTarget = apperr.New(apperr.KindValidation, "either --submission or --course is required")

func courseFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "course", Aliases: []string{"C"}, Usage: "course code", Required: true}
}

func lecturerCommands(rt *runtime) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "teaching",
			Usage: "list the courses you teach and your student count",
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				courses, err := s.TeachingCourses(c.Context)
				if err != nil {
					return err
				}
				count, err := s.StudentCount(c.Context)
				if err != nil {
					return err
				}
				w := table("CODE", "NAME", "PROGRESS")
				for _, co := range courses {
					fmt.Fprintf(w, "%s\t%s\t%d%%\n", co.CourseCode, co.CourseName, co.Progress)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Printf("%d student(s) enrolled across your courses\n", count)
				return nil
			},
		},
		{
			Name:  "course",
			Usage: "manage the courses you teach",
			Subcommands: []*cli.Command{
				{
					Name:  "create",
					Usage: "add a course taught by you",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "code", Required: true},
						&cli.StringFlag{Name: "name", Required: true},
					},
					Action: func(c *cli.Context) error {
						s, err := rt.current(c.Context)
						if err != nil {
							return err
						}
						co, err := s.CreateCourse(c.Context, &dto.CreateCourseRequest{
							CourseCode: c.String("code"),
							CourseName: c.String("name"),
						})
						if err != nil {
							return err
						}
						fmt.Printf("course %s (%s) created, teacher %s\n", co.CourseCode, co.CourseName, co.Teacher)
						return nil
					},
				},
			},
		},
		{
			Name:  "assignment",
			Usage: "manage assignments",
			Subcommands: []*cli.Command{
				{
					Name:  "create",
					Usage: "create an assignment and announce it",
					Flags: []cli.Flag{
						courseFlag(),
						&cli.StringFlag{Name: "title", Required: true},
						&cli.StringFlag{Name: "due", Usage: "due date YYYY-MM-DD", Required: true},
						&cli.StringFlag{Name: "description"},
						&cli.StringFlag{Name: "instructions"},
						&cli.IntFlag{Name: "max-points", Usage: "0 uses the default"},
						&cli.StringFlag{Name: "criteria"},
					},
					Action: func(c *cli.Context) error {
						s, err := rt.current(c.Context)
						if err != nil {
							return err
						}
						a, err := s.CreateAssignment(c.Context, &dto.CreateAssignmentRequest{
							CourseCode:      c.String("course"),
							Title:           c.String("title"),
							Description:     c.String("description"),
							Instructions:    c.String("instructions"),
							DueDate:         c.String("due"),
							MaxPoints:       c.Int("max-points"),
							GradingCriteria: c.String("criteria"),
						})
						if err != nil {
							return err
						}
						fmt.Printf("assignment %d created for %s, due %s (%d points)\n", a.ID, a.CourseCode, a.DueDate, a.MaxPoints)
						return nil
					},
				},
				{
					Name:  "list",
					Usage: "list assignments of a course",
					Flags: []cli.Flag{courseFlag()},
					Action: func(c *cli.Context) error {
						s, err := rt.current(c.Context)
						if err != nil {
							return err
						}
						list, err := s.CourseAssignments(c.Context, c.String("course"))
						if err != nil {
							return err
						}
						w := table("ID", "TITLE", "DUE", "POINTS")
						for _, a := range list {
							fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", a.ID, a.Title, a.DueDate, a.MaxPoints)
						}
						return w.Flush()
					},
				},
			},
		},
		{
			Name:  "material",
			Usage: "course materials: upload, list, download, delete",
			Subcommands: []*cli.Command{
				{
					Name:      "upload",
					Usage:     "upload a material file and announce it",
					ArgsUsage: "FILE",
					Flags: []cli.Flag{
						courseFlag(),
						&cli.StringFlag{Name: "title", Usage: "defaults to the file name"},
					},
					Action: func(c *cli.Context) error {
						s, err := rt.current(c.Context)
						if err != nil {
							return err
						}
						src := c.Args().First()
						title := c.String("title")
						if title == "" && src != "" {
							title = filepath.Base(src)
						}
						m, err := s.UploadMaterial(c.Context, &dto.UploadMaterialRequest{
							CourseCode: c.String("course"),
							Title:      title,
							SourcePath: src,
						})
						if err != nil {
							return err
						}
						fmt.Printf("material %d stored at %s\n", m.ID, m.FilePath)
						return nil
					},
				},
				{
					Name:  "list",
					Usage: "list materials of a course you teach or are enrolled in",
					Flags: []cli.Flag{courseFlag()},
					Action: func(c *cli.Context) error {
						s, err := rt.current(c.Context)
						if err != nil {
							return err
						}
						list, err := s.CourseMaterials(c.Context, c.String("course"))
						if err != nil {
							return err
						}
						w := table("ID", "TITLE", "UPLOADED", "FILE")
						for _, m := range list {
							fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, m.Title, m.UploadDate, m.FilePath)
						}
						return w.Flush()
					},
				},
				{
					Name:  "download",
					Usage: "copy a material file into a directory",
					Flags: []cli.Flag{
						&cli.Int64Flag{Name: "id", Required: true},
						&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory", Value: "."},
					},
					Action: func(c *cli.Context) error {
						s, err := rt.current(c.Context)
						if err != nil {
							return err
						}
						path, err := s.DownloadMaterial(c.Context, c.Int64("id"), c.String("out"))
						if err != nil {
							return err
						}
						fmt.Printf("material written to %s\n", path)
						return nil
					},
				},
				{
					Name:  "delete",
					Usage: "delete a material",
					Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
					Action: func(c *cli.Context) error {
						s, err := rt.current(c.Context)
						if err != nil {
							return err
						}
						if err := s.DeleteMaterial(c.Context, c.Int64("id")); err != nil {
							return err
						}
						fmt.Println("material deleted")
						return nil
					},
				},
			},
		},
		{
			Name:  "announce",
			Usage: "post an announcement (global unless --course is given)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "course", Aliases: []string{"C"}},
				&cli.StringFlag{Name: "title", Required: true},
				&cli.StringFlag{Name: "content", Required: true},
			},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				req := &dto.BroadcastRequest{Title: c.String("title"), Content: c.String("content")}
				if code := c.String("course"); code != "" {
					req.CourseCode = &code
				}
				a, err := s.Announce(c.Context, req)
				if err != nil {
					return err
				}
				fmt.Printf("announcement %d posted on %s\n", a.ID, a.Date)
				return nil
			},
		},
		{
			Name:  "submissions",
			Usage: "list submissions of an assignment",
			Flags: []cli.Flag{&cli.Int64Flag{Name: "assignment", Aliases: []string{"a"}, Required: true}},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				list, err := s.Submissions(c.Context, c.Int64("assignment"))
				if err != nil {
					return err
				}
				w := table("ID", "STUDENT", "SUBMITTED", "GRADE", "PUBLISHED", "FILE")
				for _, sub := range list {
					grade := "-"
					if sub.Grade != nil {
						grade = fmt.Sprint(*sub.Grade)
					}
					student := sub.StudentName
					if student == "" {
						student = sub.StudentID
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n", sub.ID, student, sub.SubmissionDate, grade, sub.Published, sub.FilePath)
				}
				return w.Flush()
			},
		},
		{
			Name:  "grade",
			Usage: "grade a submission",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "submission", Aliases: []string{"s"}, Required: true},
				&cli.IntFlag{Name: "score", Required: true},
				&cli.StringFlag{Name: "feedback"},
			},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				sub, err := s.Grade(c.Context, &dto.GradeRequest{
					SubmissionID: c.Int64("submission"),
					Score:        c.Int("score"),
					Feedback:     c.String("feedback"),
				})
				if err != nil {
					return err
				}
				fmt.Printf("submission %d graded %d\n", sub.ID, *sub.Grade)
				return nil
			},
		},
		{
			Name:  "publish",
			Usage: "publish one graded submission, or every graded submission of --course",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "submission", Aliases: []string{"s"}},
				&cli.StringFlag{Name: "course", Aliases: []string{"C"}},
			},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				if code := c.String("course"); code != "" {
					n, err := s.PublishAll(c.Context, code)
					if err != nil {
						return err
					}
					fmt.Printf("%d grade(s) published for %s\n", n, code)
					return nil
				}
				id := c.Int64("submission")
				if id == 0 {
					return errPublishTarget
				}
				if err := s.Publish(c.Context, id); err != nil {
					return err
				}
				fmt.Printf("submission %d published\n", id)
				return nil
			},
		},
		{
			Name:  "progress",
			Usage: "set course progress (0-100)",
			Flags: []cli.Flag{courseFlag(), &cli.IntFlag{Name: "percent", Required: true}},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				if err := s.UpdateProgress(c.Context, c.String("course"), c.Int("percent")); err != nil {
					return err
				}
				fmt.Println("progress updated")
				return nil
			},
		},
		{
			Name:  "export",
			Usage: "export the course gradebook as xlsx",
			Flags: []cli.Flag{
				courseFlag(),
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory", Value: "."},
			},
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				buf, name, err := s.ExportGradebook(c.Context, c.String("course"))
				if err != nil {
					return err
				}
				path := filepath.Join(c.String("out"), name)
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return err
				}
				fmt.Printf("gradebook written to %s\n", path)
				return nil
			},
		},
	}
}
