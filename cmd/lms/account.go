package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/pkg/database"
)

func accountCommands(rt *runtime) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "apply database migrations and seed default courses and lecturers",
			Action: func(c *cli.Context) error {
				// Before already migrated when auto_migrate is on
				if !rt.cfg.Database.AutoMigrate {
					sqlDB, err := rt.db.DB()
					if err != nil {
						return err
					}
					if err := database.RunMigrations(sqlDB, rt.logger); err != nil {
						return err
					}
				}
				if err := rt.svc.Seed.Seed(c.Context); err != nil {
					return err
				}
				fmt.Println("database ready")
				return nil
			},
		},
		{
			Name:  "register",
			Usage: "create a student account (lecturer accounts are seeded by migrate)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "full-name", Required: true},
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "username", Required: true},
			},
			Action: func(c *cli.Context) error {
				pwd, err := promptPassword("Password: ")
				if err != nil {
					return err
				}
				confirm, err := promptPassword("Confirm password: ")
				if err != nil {
					return err
				}
				user, err := rt.svc.Auth.Register(c.Context, &dto.RegisterRequest{
					FullName:        c.String("full-name"),
					Email:           c.String("email"),
					Username:        c.String("username"),
					Password:        pwd,
					ConfirmPassword: confirm,
				})
				if err != nil {
					return err
				}
				fmt.Printf("registered %s (%s)\n", user.Username, user.Role)
				return nil
			},
		},
		{
			Name:  "login",
			Usage: "log in and remember the session",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			},
			Action: func(c *cli.Context) error {
				pwd, err := promptPassword("Password: ")
				if err != nil {
					return err
				}
				// pollers belong to `lms watch`, not to this one-shot login
				resp, err := rt.svc.Auth.Login(c.Context, &dto.LoginRequest{Username: c.String("username"), Password: pwd})
				if err != nil {
					return err
				}
				if err := rt.saveToken(resp.Token); err != nil {
					return err
				}
				fmt.Printf("welcome, %s (%s)\n", resp.User.FullName, resp.User.Role)
				return nil
			},
		},
		{
			Name:  "logout",
			Usage: "end the saved session",
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err == nil {
					if err := rt.manager.Logout(c.Context, s); err != nil {
						return err
					}
				}
				if err := rt.clearToken(); err != nil {
					return err
				}
				fmt.Println("logged out")
				return nil
			},
		},
		{
			Name:  "whoami",
			Usage: "show the logged-in user",
			Action: func(c *cli.Context) error {
				s, err := rt.current(c.Context)
				if err != nil {
					return err
				}
				fmt.Printf("%s (%s) role=%s\n", s.User.FullName, s.User.Username, s.User.Role)
				return nil
			},
		},
	}
}
