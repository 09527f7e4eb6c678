/*Package joy flies a DJI Tello® drone with a physical joystick, directly from your PC.

Disclaimer

Tello is a registered trademark of Ryze Tech.  The author(s) of this package is/are in no way affiliated with Ryze, DJI, or Intel.
Use this package at your own risk.  The author(s) is/are in no way responsible for any damage caused either to or by the
drone when using this software.

Overview

The package reads a joystick through the Linux kernel joystick interface and turns button presses
and stick motion into the plain-text commands of the Tello SDK ('command', 'takeoff', 'land',
'emergency' and 'rc' stick updates), sent over UDP to the drone. Be sure that networking is
already set up and the drone is reachable before starting.

Two goroutines do the real work: the InputDispatcher consumes joystick events and enqueues
commands, and the CommandSender drains the queue in strict arrival order, performing one
synchronous request/response exchange per command with a short reply timeout. Nothing is ever
retried; over this link a fresh stick update is always worth more than a stale one. Pressing
the emergency or forced-landing control wipes the queue before the safety command goes in, so
it is the next thing on the wire.

The Controller owns both goroutines and, on interrupt, always lands the drone before exiting.

An optional WebSocket monitor feed publishes every command outcome as JSON for observation
from another machine; see Monitor.

*/
package joy
