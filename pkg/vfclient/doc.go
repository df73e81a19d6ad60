// Package vfclient builds vosfactures.Client values.
//
// Use New with an explicit vosfactures.Config, NewWithToken for the common
// host and token case, or NewFromSettings to read the configuration the same
// way the command line tool does.
//
//	cli, err := vfclient.NewFromSettings(ctx, "")
//	if err != nil { log.Fatal(err) }
//	defer cli.Close()
//
//	departments, err := cli.Departments().List(ctx)
package vfclient
