//go:build !animdebug

package anim

const debugAsserts = false
