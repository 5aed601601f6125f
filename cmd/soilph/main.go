/*
Copyright © 2021 the GlobalSoilpH authors.
This file is part of GlobalSoilpH.

GlobalSoilpH is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GlobalSoilpH is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GlobalSoilpH.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command soilph runs the analyses supporting a global study of soil
// pH.
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/eslessarev/GlobalSoilpH/soilphutil"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if err := soilphutil.Root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
