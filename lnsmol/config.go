/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package main

import (
	"github.com/redis/go-redis/v9"

	"github.com/harrybrwn/geocore/config"
)

func newRedisClient(cfg *config.LinkConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Username: cfg.RedisUsername(),
		Password: cfg.RedisPassword(),
		DB:       cfg.RedisDB(),
	})
}
