package http

import "chatter/internal/platform/config"

func testConf() config.Conf { return config.New().Prefix("HTTPTEST_UNSET_") }
