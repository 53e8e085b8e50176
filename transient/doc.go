// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transient classifies failures by how likely a retry is to cure them.

The retry scheduler in package retry treats every failure as retryable by
default, so nothing in this module consults transience unless a caller opts
in through the retry.Options.RetryIf extension point. Categorize is the
building block for such predicates; retry.TransientOnly is a ready-made one.
*/
package transient
