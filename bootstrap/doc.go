// Package bootstrap turns a config.Config into a ready logger.
//
// New is the only place that knows how sinks are combined:
//
//	cfg, err := config.Load(path)
//	if err != nil {
//		return err
//	}
//	common, err := bootstrap.New(cfg)
//	if err != nil {
//		return err
//	}
//	defer common.Close()
//
//	common.Log.Info("started")
package bootstrap
