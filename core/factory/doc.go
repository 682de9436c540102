// Package factory provides a small generic registry used to instantiate
// modules from configuration. Modules are defined by a type string and a map
// of raw settings. Factories decode the settings into typed structs and
// return the concrete implementation. It backs the configurable metrics
// sinks.
//
// Example usage:
//
//	reg := factory.NewRegistry[logging.AuditStore]()
//	reg.Register("jsonl", func(conf map[string]any) (logging.AuditStore, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return logging.NewJSONLStore(c.Path)
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "jsonl", Conf: map[string]any{"path": "audit.log"}})
package factory
